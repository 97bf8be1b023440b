// Package validation checks emitted CloudFormation templates with cfn-lint-go.
//
// The construct itself never validates; anything beyond the required fields
// passes through to the template untouched. This package is where a rendered
// template can be checked before it is handed to a provisioning tool.
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"
)

// Result contains the outcome of validating one template.
type Result struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r Result) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// ValidateFile runs cfn-lint over a template file.
func ValidateFile(templatePath string) (*Result, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return &Result{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return &Result{
			Passed: false,
			Errors: []string{fmt.Sprintf("Linter error: %v", err)},
		}, nil
	}

	return categorize(matches), nil
}

// ValidateBytes runs cfn-lint over rendered template bytes. The linter reads
// files, so the bytes pass through a temporary one.
func ValidateBytes(template []byte) (*Result, error) {
	tmp, err := os.CreateTemp("", "privategw-*.template.json")
	if err != nil {
		return nil, fmt.Errorf("creating temp template: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(template); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing temp template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	return ValidateFile(tmp.Name())
}

// categorize buckets matches by level. Warnings are acceptable; the result
// only fails on errors.
func categorize(matches []lint.Match) *Result {
	result := &Result{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	result.Passed = len(result.Errors) == 0
	return result
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}
