package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/privategw-go/internal/importer"
)

// newImportCmd creates the "import" subcommand for recovering stack files
// from existing templates.
func newImportCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "import <template>",
		Short: "Import a CloudFormation template as a stack file",
		Long: `Import reads a CloudFormation YAML/JSON template describing a private API
Gateway and writes the stack file that would rebuild it.

Template parts the importer cannot map onto a stack file (parameters,
referenced endpoints, resources outside the gateway) are reported as
warnings on stderr, never guessed at.

Examples:
  # Recover a stack file from a deployed template
  privategw import template.yaml -o stack.yaml

  # Inspect what a template maps to
  privategw import template.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output stack file (default: stdout)")

	return cmd
}

func runImport(templatePath, outputFile string) error {
	result, err := importer.Extract(templatePath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	data, err := importer.WriteStack(result.Stack)
	if err != nil {
		return fmt.Errorf("writing stack file: %w", err)
	}

	if outputFile == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}

	fmt.Printf("Wrote %s: stage %q, %d domains, %d routes\n",
		outputFile, result.Stack.Stage, len(result.Stack.Domains), len(result.Stack.Routes))

	return nil
}
