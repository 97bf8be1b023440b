package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildTestStack = `stage: prod
vpc_endpoint: vpce-0f1e2d3c4b5a69788
domains:
  - internal-api.example.test
routes:
  - name: orders
    path: orders
    method: POST
`

func writeStackFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewBuildCmd(t *testing.T) {
	cmd := newBuildCmd()

	assert.Equal(t, "build [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"format", "output", "target", "namespace", "check"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing --%s flag", name)
	}
	assert.Equal(t, "json", cmd.Flags().Lookup("format").DefValue)
	assert.Equal(t, "cfn", cmd.Flags().Lookup("target").DefValue)
}

func TestRunBuild_WritesTemplate(t *testing.T) {
	stackPath := writeStackFile(t, buildTestStack)
	outPath := filepath.Join(filepath.Dir(stackPath), "template.json")

	err := runBuild([]string{stackPath}, buildOptions{
		outputFormat: "json",
		outputFile:   outPath,
		target:       "cfn",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var tmpl map[string]any
	require.NoError(t, json.Unmarshal(data, &tmpl))

	resources := tmpl["Resources"].(map[string]any)
	assert.Contains(t, resources, "PrivateRestApi")
	assert.Contains(t, resources, "ApiDeployment")
	assert.Contains(t, resources, "ApiStage")
	assert.Contains(t, resources, "OrdersResource")
	assert.Contains(t, resources, "OrdersMethod")

	outputs := tmpl["Outputs"].(map[string]any)
	assert.Contains(t, outputs, "RestApiId")
	assert.Contains(t, outputs, "StageName")
}

func TestRunBuild_CheckInSync(t *testing.T) {
	stackPath := writeStackFile(t, buildTestStack)
	outPath := filepath.Join(filepath.Dir(stackPath), "template.json")

	require.NoError(t, runBuild([]string{stackPath}, buildOptions{
		outputFormat: "json",
		outputFile:   outPath,
		target:       "cfn",
	}))

	// The just-written template must compare clean against a fresh build
	err := runBuild([]string{stackPath}, buildOptions{
		outputFormat: "json",
		target:       "cfn",
		checkFile:    outPath,
	})
	assert.NoError(t, err)
}

func TestRunBuild_K8sTarget(t *testing.T) {
	stackPath := writeStackFile(t, buildTestStack)
	outPath := filepath.Join(filepath.Dir(stackPath), "manifests.yaml")

	err := runBuild([]string{stackPath}, buildOptions{
		outputFormat: "json",
		outputFile:   outPath,
		target:       "k8s",
		namespace:    "infra",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	assert.Contains(t, string(data), "kind: RestAPI")
	assert.Contains(t, string(data), "kind: BasePathMapping")
	assert.Contains(t, string(data), "namespace: infra")
	assert.Contains(t, string(data), "vpce-0f1e2d3c4b5a69788")
}

func TestRunBuild_UnknownTarget(t *testing.T) {
	stackPath := writeStackFile(t, buildTestStack)

	err := runBuild([]string{stackPath}, buildOptions{outputFormat: "json", target: "tf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestLoadSingleStack_NoneFound(t *testing.T) {
	dir := t.TempDir()

	_, err := loadSingleStack([]string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stack files found")
}

func TestLoadSingleStack_Multiple(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stack.yaml"), []byte(buildTestStack), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orders.stack.yaml"), []byte(buildTestStack), 0644))

	_, err := loadSingleStack([]string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "give exactly one")
}
