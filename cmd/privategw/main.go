// Command privategw renders private API Gateway stacks from YAML stack files.
//
// Usage:
//
//	privategw build ./stacks/...     Render the CloudFormation template
//	privategw lint ./stacks/...      Check stack files for issues
//	privategw init my-gateway        Create a new stack directory
//	privategw version                Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "privategw",
		Short: "Render private API Gateway stacks",
		Long: `privategw renders private API Gateway CloudFormation stacks from stack files.

Describe a gateway in a YAML stack file:

    stage: prod
    vpc_endpoint: vpce-0f1e2d3c4b5a69788
    domains:
      - internal-api.example.com

Then render the CloudFormation template:

    privategw build ./stacks/...`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newListCmd(),
		newLintCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newImportCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("privategw %s\n", getVersion())
		},
	}
}
