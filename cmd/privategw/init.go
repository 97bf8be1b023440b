package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
)

// validProjectName matches valid project names (alphanumeric, hyphens, underscores)
var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a new gateway stack directory",
		Long: `Init creates a new directory with a starter stack file.

The directory is created under the current one with the given name.
Multiple stacks can coexist in the same workspace.

Examples:
    privategw init orders-gateway    # Creates ./orders-gateway/
    privategw init internal-api      # Creates ./internal-api/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(".", args[0])
		},
	}
}

// runInit creates a new stack directory at {workspaceDir}/{projectName}/
func runInit(workspaceDir, projectName string) error {
	if !validProjectName.MatchString(projectName) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, numbers, hyphens, or underscores", projectName)
	}

	projectPath := filepath.Join(workspaceDir, projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("project already exists: %s", projectPath)
	}

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	stackYAML := `# Private API Gateway stack.
#
# Replace vpc_endpoint with the interface endpoint the API accepts traffic
# from; everything else is optional. Uncomment sections as needed.
stage: dev
vpc_endpoint: vpce-REPLACE_ME

# domains:
#   - internal-api.example.com
# base_path: api

# binary_media_types:
#   - application/octet-stream
# minimum_compression_size: 1024

# routes:
#   - name: orders
#     path: orders
#     method: POST
`
	if err := os.WriteFile(filepath.Join(projectPath, "stack.yaml"), []byte(stackYAML), 0644); err != nil {
		return fmt.Errorf("writing stack.yaml: %w", err)
	}

	fmt.Printf("Created project: %s/\n", projectPath)
	fmt.Printf("  └── stack.yaml\n")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  edit %s/stack.yaml\n", projectName)
	fmt.Printf("  privategw build ./%s\n", projectName)
	fmt.Println()

	return nil
}
