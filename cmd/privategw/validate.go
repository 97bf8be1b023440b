package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	privategw "github.com/lex00/privategw-go"
	"github.com/lex00/privategw-go/internal/config"
	"github.com/lex00/privategw-go/internal/discover"
	"github.com/lex00/privategw-go/internal/template"
	"github.com/lex00/privategw-go/internal/validation"
)

// newValidateCmd creates the "validate" subcommand for checking stack files.
func newValidateCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate stack files and their rendered templates",
		Long: `Validate loads every stack file, builds its gateway, and runs cfn-lint
over the rendered template.

Checks performed:
  - Stack file validity: required fields present, values well formed
  - Template validity: the rendered CloudFormation template passes cfn-lint

Examples:
    privategw validate ./stacks/...
    privategw validate ./stacks/... --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

// runValidate checks each discovered stack file and its rendered template.
func runValidate(paths []string, format string) error {
	discovered, err := discover.Discover(discover.Options{Paths: paths})
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if len(discovered.Stacks) == 0 {
		return fmt.Errorf("no stack files found")
	}

	result := privategw.ValidateResult{Success: true}
	for _, e := range discovered.Errors {
		result.Warnings = append(result.Warnings, e.Error())
	}

	for _, path := range discovered.Stacks {
		validateStack(path, &result)
	}

	return outputValidateResult(result, format)
}

// validateStack folds one stack file's findings into the shared result.
func validateStack(path string, result *privategw.ValidateResult) {
	stack, err := config.Load(path)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return
	}

	gw, err := stack.Gateway()
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
		return
	}

	tmpl, err := template.FromGateway(gw)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
		return
	}
	if stack.Description != "" {
		tmpl.Description = stack.Description
	}

	data, err := template.ToJSON(tmpl)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
		return
	}

	lintResult, err := validation.ValidateBytes(data)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
		return
	}

	for _, msg := range lintResult.Errors {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", path, msg))
	}
	for _, msg := range lintResult.Warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", path, msg))
	}
	if !lintResult.Passed {
		result.Success = false
	}

	result.Resources += len(tmpl.Resources)
}

func outputValidateResult(result privategw.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
