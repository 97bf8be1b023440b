package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/privategw-go/internal/differ"
)

func newDiffCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "diff <template1> <template2>",
		Short: "Compare two rendered templates",
		Long: `Diff compares two CloudFormation template files semantically.

Both files may be JSON or YAML; numbers and key order are normalized before
comparing, so a YAML template diffs clean against its JSON rendering. Array
order stays significant.

Exits with code 1 when the templates differ.

Examples:
    privategw diff template.json deployed.json
    privategw diff template.json template.yaml --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runDiff(beforePath, afterPath, format string) error {
	result, err := differ.CompareFiles(beforePath, afterPath)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.InSync() {
			fmt.Println("Templates are in sync.")
			return nil
		}
		printDiff(result)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.InSync() {
		os.Exit(1)
	}

	return nil
}

// printDiff writes a comparison result in text form: one line per changed
// resource, property paths indented beneath modified ones.
func printDiff(result *differ.Result) {
	for _, entry := range result.Diff.Added {
		fmt.Printf("+ %s [%s]\n", entry.Resource, entry.Type)
	}
	for _, entry := range result.Diff.Removed {
		fmt.Printf("- %s [%s]\n", entry.Resource, entry.Type)
	}
	for _, entry := range result.Diff.Modified {
		fmt.Printf("~ %s [%s]\n", entry.Resource, entry.Type)
		for _, change := range entry.Changes {
			fmt.Printf("    %s\n", change)
		}
	}
	if result.DescriptionChanged {
		fmt.Println("~ Description changed")
	}
	for _, change := range result.OutputChanges {
		fmt.Printf("~ %s\n", change)
	}

	fmt.Printf("\n%d added, %d removed, %d modified\n",
		result.Summary.Added, result.Summary.Removed, result.Summary.Modified)
}
