package lint

import (
	"path"
	"runtime"
	"strings"
)

// RuleOption carries per-rule configuration resolved by the config
// layer.
type RuleOption struct {
	// Disabled turns the rule off entirely.
	Disabled bool

	// Severity overrides the rule's default severity when non-nil.
	Severity *Severity

	// Settings holds rule-specific knobs (e.g. "max-lines": 80).
	Settings map[string]any
}

// Options configures a Runner.
type Options struct {
	// Rules maps rule names to their configuration. Rules without an
	// entry run with defaults.
	Rules map[string]RuleOption

	// Exclude lists path patterns to skip. A pattern matches either
	// the full slash-separated path (path.Match) or any single path
	// segment, so "testdata" excludes every testdata directory and
	// "pkg/gen/*.go" excludes by location.
	Exclude []string

	// FailOn is the severity threshold at which Result.Failed
	// reports failure.
	FailOn Severity

	// Concurrency is the number of files linted in parallel.
	Concurrency int

	// IncludeTests controls whether _test.go files are linted.
	IncludeTests bool
}

// DefaultOptions returns the options used when no configuration is
// supplied.
func DefaultOptions() Options {
	return Options{
		Rules:        make(map[string]RuleOption),
		FailOn:       SeverityError,
		Concurrency:  runtime.NumCPU(),
		IncludeTests: true,
	}
}

// excluded reports whether p matches any exclusion pattern.
func (o *Options) excluded(p string) bool {
	slashed := strings.ReplaceAll(p, "\\", "/")
	segments := strings.Split(slashed, "/")

	for _, pattern := range o.Exclude {
		if ok, err := path.Match(pattern, slashed); err == nil && ok {
			return true
		}
		for _, seg := range segments {
			if ok, err := path.Match(pattern, seg); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// settingsMap flattens per-rule settings for File accessors.
func (o *Options) settingsMap() map[string]map[string]any {
	if len(o.Rules) == 0 {
		return nil
	}
	out := make(map[string]map[string]any, len(o.Rules))
	for name, opt := range o.Rules {
		if len(opt.Settings) > 0 {
			out[name] = opt.Settings
		}
	}
	return out
}

// effectiveSeverity resolves the severity for a rule after overrides.
func (o *Options) effectiveSeverity(rule Rule) Severity {
	if opt, ok := o.Rules[rule.Name()]; ok && opt.Severity != nil {
		return *opt.Severity
	}
	return rule.DefaultSeverity()
}

// ruleEnabled reports whether the rule should run.
func (o *Options) ruleEnabled(name string) bool {
	opt, ok := o.Rules[name]
	return !ok || !opt.Disabled
}
