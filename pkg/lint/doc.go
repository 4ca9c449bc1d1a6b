// Package lint implements the Caliper rule engine: a pluggable,
// AST-based lint framework for Go source files.
//
// The framework is built around three pieces:
//
//   - Rule: a self-contained check that inspects a parsed file and
//     reports violations.
//   - Registry: a thread-safe collection of rules, keyed by name.
//   - Runner: walks files, parses them, dispatches enabled rules and
//     merges their findings into a Result.
//
// Violations can be suppressed with inline ignore directives:
//
//	x := 42 //caliper:disable-line magic-number
//	//caliper:disable-next-line print-statement
//	fmt.Println("debug")
//	//caliper:disable-file todo-reference
//
// Rule behavior is tuned through per-rule settings supplied by the
// configuration layer (see pkg/config), which also controls severity
// overrides, path exclusions and the failure threshold.
//
// Example:
//
//	reg := lint.NewRegistry()
//	rules.RegisterBuiltins(reg)
//	runner := lint.NewRunner(reg, lint.DefaultOptions())
//	result, err := runner.LintPaths(ctx, []string{"./..."})
package lint
