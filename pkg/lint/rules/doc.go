// Package rules contains the built-in Caliper lint rules.
//
// Each rule lives in its own file and implements lint.Rule. Rules are
// registered explicitly with RegisterBuiltins rather than via init()
// side effects, so callers can build registries with a subset of
// rules or with custom ones.
package rules

import "benlabs/caliper/pkg/lint"

// RegisterBuiltins registers every built-in rule with the registry.
func RegisterBuiltins(reg *lint.Registry) {
	reg.MustRegister(&MagicNumber{})
	reg.MustRegister(&PrintStatement{})
	reg.MustRegister(&FunctionLength{})
	reg.MustRegister(&NestingDepth{})
	reg.MustRegister(&ParameterCount{})
	reg.MustRegister(&MethodCount{})
	reg.MustRegister(&ErrorMessage{})
	reg.MustRegister(&TodoReference{})
	reg.MustRegister(&FileHeader{})
}

// DefaultRegistry returns a new registry with all built-in rules.
func DefaultRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	RegisterBuiltins(reg)
	return reg
}
