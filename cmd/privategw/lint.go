package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	privategw "github.com/lex00/privategw-go"
	"github.com/lex00/privategw-go/internal/config"
	"github.com/lex00/privategw-go/internal/discover"
	"github.com/lex00/privategw-go/internal/lint"
)

func newLintCmd() *cobra.Command {
	var (
		outputFormat string
		rules        []string
	)

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check stack files for issues",
		Long: `Lint checks stack files for values the provider would only reject at
deployment time. Findings never block a build.

Rules:
    PGW001: Stage name contains characters API Gateway rejects
    PGW002: VPC endpoint id does not match the vpce- shape
    PGW003: Duplicate domain entries collide on one mapping
    PGW004: Minimum compression size outside the accepted range
    PGW005: Binary media type is not type/subtype
    PGW006: Base path contains characters the mapping rejects

Examples:
    privategw lint ./stacks/...
    privategw lint ./stacks/... --rules PGW001,PGW002`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args, outputFormat, rules)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().StringSliceVar(&rules, "rules", nil, "Rules to enable (default: all)")

	return cmd
}

func runLint(paths []string, format string, rules []string) error {
	discovered, err := discover.Discover(discover.Options{Paths: paths})
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}
	if len(discovered.Stacks) == 0 {
		return fmt.Errorf("no stack files found")
	}

	var issues []privategw.LintIssue

	// Unreadable subtrees surface as findings rather than stopping the run
	for _, e := range discovered.Errors {
		issues = append(issues, privategw.LintIssue{
			Severity: "warning",
			Message:  e.Error(),
			Rule:     "discover",
		})
	}

	for _, path := range discovered.Stacks {
		stack, err := config.Load(path)
		if err != nil {
			issues = append(issues, privategw.LintIssue{
				Severity: "error",
				Message:  err.Error(),
				Rule:     "config",
				File:     path,
			})
			continue
		}

		lintResult := lint.LintStack(stack, lint.Options{EnabledRules: rules})
		for _, issue := range lintResult.Issues {
			message := issue.Message
			if issue.Suggestion != "" {
				message = fmt.Sprintf("%s (try: %s)", issue.Message, issue.Suggestion)
			}
			issues = append(issues, privategw.LintIssue{
				Severity: string(issue.Severity),
				Message:  message,
				Rule:     issue.Rule,
				File:     issue.File,
				Line:     issue.Line,
				Column:   issue.Column,
			})
		}
	}

	result := privategw.LintResult{
		Success: len(issues) == 0,
		Issues:  issues,
	}

	return outputLintResult(result, format)
}

func outputLintResult(result privategw.LintResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Println("No issues found.")
			return nil
		}

		for _, issue := range result.Issues {
			if issue.File != "" {
				fmt.Printf("%s:%d:%d: %s: %s [%s]\n",
					issue.File, issue.Line, issue.Column,
					issue.Severity, issue.Message, issue.Rule)
			} else {
				fmt.Printf("%s: %s [%s]\n", issue.Severity, issue.Message, issue.Rule)
			}
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(2) // Exit code 2 for issues found
	}

	return nil
}
