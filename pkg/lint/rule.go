package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Rule is the interface all lint checks implement. A Rule inspects a
// single parsed file and reports zero or more violations.
//
// Implementations must be safe for concurrent use: the runner calls
// Check from multiple goroutines, one file at a time per goroutine.
type Rule interface {
	// Name returns the unique rule identifier (e.g. "magic-number").
	Name() string

	// Category returns the rule's category.
	Category() Category

	// Description returns a one-line human description.
	Description() string

	// DefaultSeverity returns the severity used when configuration
	// does not override it.
	DefaultSeverity() Severity

	// Check inspects the file and returns violations. Rules set Rule,
	// Category, File, Line, Column, Message and Suggestion; the
	// runner fills in effective severity.
	Check(f *File) []Violation
}

// Registry is a thread-safe collection of rules keyed by name.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule. Registering two rules with the same name is
// an error: rule names are identifiers in configuration and ignore
// directives, so collisions would silently change behavior.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := rule.Name()
	if name == "" {
		return fmt.Errorf("rule has empty name")
	}
	if _, exists := r.rules[name]; exists {
		return fmt.Errorf("rule %q already registered", name)
	}
	r.rules[name] = rule
	return nil
}

// MustRegister adds a rule and panics on error. Intended for built-in
// rule registration at startup.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Get returns the rule with the given name, or nil.
func (r *Registry) Get(name string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[name]
}

// Has reports whether a rule with the given name is registered.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Rules returns all registered rules sorted by name.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		rules = append(rules, r.rules[name])
	}
	return rules
}

// ByCategory returns registered rules in the given category, sorted
// by name.
func (r *Registry) ByCategory(cat Category) []Rule {
	var rules []Rule
	for _, rule := range r.Rules() {
		if rule.Category() == cat {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
