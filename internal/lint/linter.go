// Package lint provides lint rules for stack files.
package lint

import (
	corelint "github.com/lex00/wetwire-core-go/lint"

	"github.com/lex00/privategw-go/internal/config"
)

// Type aliases for the core lint vocabulary.
type (
	// Issue is an alias for corelint.Issue.
	Issue = corelint.Issue
	// Severity is an alias for corelint.Severity.
	Severity = corelint.Severity
)

// Severity constants re-exported from corelint.
const (
	SeverityError   = corelint.SeverityError
	SeverityWarning = corelint.SeverityWarning
	SeverityInfo    = corelint.SeverityInfo
)

// Rule checks one loaded stack for a single class of problem.
type Rule interface {
	ID() string
	Description() string
	Check(stack *config.Stack) []Issue
}

// Result contains the outcome of linting.
type Result struct {
	Success bool
	Issues  []Issue
}

// Options configures the linter.
type Options struct {
	// Rules to enable. If empty, all rules are enabled.
	EnabledRules []string
}

// LintStack runs the enabled rules over a loaded stack. Rules only ever
// report; the stack is never modified and a finding never blocks a build.
func LintStack(stack *config.Stack, opts Options) Result {
	var issues []Issue
	for _, rule := range getRules(opts) {
		issues = append(issues, rule.Check(stack)...)
	}

	return Result{
		Success: len(issues) == 0,
		Issues:  issues,
	}
}

// getRules returns the rules to use based on options.
func getRules(opts Options) []Rule {
	all := AllRules()

	if len(opts.EnabledRules) == 0 {
		return all
	}

	enabled := make(map[string]bool)
	for _, id := range opts.EnabledRules {
		enabled[id] = true
	}

	var filtered []Rule
	for _, r := range all {
		if enabled[r.ID()] {
			filtered = append(filtered, r)
		}
	}

	return filtered
}
