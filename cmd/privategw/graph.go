package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/privategw-go/internal/graph"
	"github.com/lex00/privategw-go/internal/template"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat   string
		includeOutputs bool
		clusterByType  bool
	)

	cmd := &cobra.Command{
		Use:   "graph [paths...]",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing the dependencies between
the resources a stack file renders.

The output can be rendered with Graphviz:
    privategw graph ./stacks | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    privategw graph ./stacks -f mermaid

Examples:
    privategw graph ./stacks
    privategw graph ./stacks -c              # cluster by service
    privategw graph ./stacks --outputs       # include template outputs
    privategw graph ./stacks -f mermaid      # mermaid format`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args, outputFormat, includeOutputs, clusterByType)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVar(&includeOutputs, "outputs", false, "Include template outputs in the graph")
	cmd.Flags().BoolVarP(&clusterByType, "cluster", "c", false, "Cluster resources by AWS service type")

	return cmd
}

func runGraph(paths []string, format string, includeOutputs bool, cluster bool) error {
	stack, err := loadSingleStack(paths)
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}

	gw, err := stack.Gateway()
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}
	tmpl, err := template.FromGateway(gw)
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}

	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graph.Generator{
		Format:           graphFormat,
		ClusterByService: cluster,
		IncludeOutputs:   includeOutputs,
	}

	return gen.Generate(tmpl, os.Stdout)
}
