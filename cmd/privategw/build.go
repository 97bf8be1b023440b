package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	privategw "github.com/lex00/privategw-go"
	"github.com/lex00/privategw-go/internal/config"
	"github.com/lex00/privategw-go/internal/differ"
	"github.com/lex00/privategw-go/internal/discover"
	"github.com/lex00/privategw-go/internal/template"
)

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		target       string
		namespace    string
		checkFile    string
	)

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Render the CloudFormation template for a stack file",
		Long: `Build loads a stack file and renders its CloudFormation template.

With --target k8s the same gateway renders as ACK manifests in one
multi-document YAML stream; --format does not apply there.

With --check the freshly rendered template is compared against an existing
template file instead of being written; drift exits with code 1.

Examples:
    privategw build ./stacks/...
    privategw build stack.yaml -o template.json
    privategw build stack.yaml --format yaml
    privategw build stack.yaml --target k8s --namespace infra
    privategw build stack.yaml --check template.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args, buildOptions{
				outputFormat: outputFormat,
				outputFile:   outputFile,
				target:       target,
				namespace:    namespace,
				checkFile:    checkFile,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&target, "target", "cfn", "Render target: cfn or k8s")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace for k8s manifests (default: ack-system)")
	cmd.Flags().StringVar(&checkFile, "check", "", "Compare the rendered template against an existing template file")

	return cmd
}

type buildOptions struct {
	outputFormat string
	outputFile   string
	target       string
	namespace    string
	checkFile    string
}

func runBuild(paths []string, opts buildOptions) error {
	stack, err := loadSingleStack(paths)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	gw, err := stack.Gateway()
	if err != nil {
		buildResult := privategw.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputResult(buildResult, opts.outputFormat, opts.outputFile)
	}

	switch opts.target {
	case "cfn":
		return outputCloudFormation(stack, gw, opts)
	case "k8s":
		return outputManifests(gw, opts)
	default:
		return fmt.Errorf("unknown target: %s (use 'cfn' or 'k8s')", opts.target)
	}
}

func outputCloudFormation(stack *config.Stack, gw *privategw.Gateway, opts buildOptions) error {
	tmpl, err := template.FromGateway(gw)
	if err != nil {
		buildResult := privategw.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputResult(buildResult, opts.outputFormat, opts.outputFile)
	}
	if stack.Description != "" {
		tmpl.Description = stack.Description
	}

	if opts.checkFile != "" {
		return checkDrift(opts.checkFile, tmpl)
	}

	resources := gw.Resources()
	resourceNames := make([]string, len(resources))
	for i, res := range resources {
		resourceNames[i] = res.Name
	}

	buildResult := privategw.BuildResult{
		Success:   true,
		Template:  *tmpl,
		Resources: resourceNames,
	}

	return outputResult(buildResult, opts.outputFormat, opts.outputFile)
}

func outputManifests(gw *privategw.Gateway, opts buildOptions) error {
	if opts.checkFile != "" {
		return fmt.Errorf("--check compares CloudFormation templates; use --target cfn")
	}

	manifests, err := gw.Manifests(opts.namespace)
	if err != nil {
		return fmt.Errorf("rendering manifests: %w", err)
	}

	data, err := template.ManifestsYAML(manifests)
	if err != nil {
		return err
	}

	if opts.outputFile == "" {
		fmt.Print(string(data))
		return nil
	}
	return os.WriteFile(opts.outputFile, data, 0644)
}

// checkDrift compares the rendered template against the one on disk. A clean
// comparison reports and returns; drift prints the differences and exits 1.
func checkDrift(checkFile string, tmpl *privategw.Template) error {
	onDisk, err := differ.LoadTemplate(checkFile)
	if err != nil {
		return err
	}

	result, err := differ.Compare(onDisk, tmpl)
	if err != nil {
		return err
	}

	if result.InSync() {
		fmt.Printf("No drift: %s matches the stack file\n", checkFile)
		return nil
	}

	fmt.Printf("Drift detected in %s:\n\n", checkFile)
	printDiff(result)
	os.Exit(1)
	return nil
}

// loadSingleStack discovers exactly one stack file under the given paths and
// loads it. Commands that render one artifact per invocation share it.
func loadSingleStack(paths []string) (*config.Stack, error) {
	discovered, err := discover.Discover(discover.Options{Paths: paths})
	if err != nil {
		return nil, err
	}
	for _, e := range discovered.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}
	if len(discovered.Stacks) == 0 {
		return nil, fmt.Errorf("no stack files found")
	}
	if len(discovered.Stacks) > 1 {
		return nil, fmt.Errorf("found %d stack files (%s); give exactly one",
			len(discovered.Stacks), strings.Join(discovered.Stacks, ", "))
	}
	return config.Load(discovered.Stacks[0])
}

func outputResult(result privategw.BuildResult, format, outputFile string) error {
	// Build failures go to stderr, never into the artifact
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	var data []byte
	var err error

	switch format {
	case "json":
		data, err = template.ToJSON(&result.Template)
	case "yaml":
		data, err = template.ToYAML(&result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
