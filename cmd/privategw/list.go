package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	privategw "github.com/lex00/privategw-go"
	"github.com/lex00/privategw-go/internal/config"
	"github.com/lex00/privategw-go/internal/discover"
)

func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List the resources each stack file renders",
		Long: `List builds every discovered stack file and displays the CloudFormation
resources its template would contain.

Examples:
    privategw list ./stacks/...
    privategw list ./stacks/... --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(paths []string, format string) error {
	discovered, err := discover.Discover(discover.Options{Paths: paths})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if len(discovered.Stacks) == 0 {
		return fmt.Errorf("no stack files found")
	}

	listResult := privategw.ListResult{
		Resources: []privategw.ListResource{},
	}

	for _, path := range discovered.Stacks {
		stack, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("list failed: %w", err)
		}
		gw, err := stack.Gateway()
		if err != nil {
			return fmt.Errorf("list failed: %s: %w", path, err)
		}

		for _, res := range gw.Resources() {
			listResult.Resources = append(listResult.Resources, privategw.ListResource{
				Name:  res.Name,
				Type:  res.Resource.ResourceType(),
				Stack: path,
			})
		}
	}

	// Group by stack, then name, for consistent output
	sort.SliceStable(listResult.Resources, func(i, j int) bool {
		a, b := listResult.Resources[i], listResult.Resources[j]
		if a.Stack != b.Stack {
			return a.Stack < b.Stack
		}
		return a.Name < b.Name
	})

	return outputListResult(listResult, format)
}

func outputListResult(result privategw.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if len(result.Resources) == 0 {
			fmt.Println("No resources found.")
			return nil
		}

		fmt.Printf("Gateway resources (%d):\n", len(result.Resources))
		currentStack := ""
		for _, res := range result.Resources {
			if res.Stack != currentStack {
				fmt.Printf("\n%s:\n", res.Stack)
				currentStack = res.Stack
			}
			fmt.Printf("  %s: %s\n", res.Name, res.Type)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
