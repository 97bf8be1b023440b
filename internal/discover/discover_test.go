package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stage: prod\nvpc_endpoint: vpce-1\n"), 0o644))
}

func TestDiscover_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	writeFile(t, path)

	result, err := Discover(Options{Paths: []string{path}})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, result.Stacks)
	assert.Empty(t, result.Errors)
}

func TestDiscover_ExplicitFile_NotAStack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.yaml")
	writeFile(t, path)

	_, err := Discover(Options{Paths: []string{path}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a stack file")
}

func TestDiscover_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stack.yaml"))
	writeFile(t, filepath.Join(dir, "orders.stack.yaml"))
	writeFile(t, filepath.Join(dir, "nested", "stack.yaml"))

	result, err := Discover(Options{Paths: []string{dir}})
	require.NoError(t, err)

	// Non-recursive: the nested file stays out
	assert.Equal(t, []string{
		filepath.Join(dir, "orders.stack.yaml"),
		filepath.Join(dir, "stack.yaml"),
	}, result.Stacks)
}

func TestDiscover_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stack.yaml"))
	writeFile(t, filepath.Join(dir, "edge", "stack.yml"))
	writeFile(t, filepath.Join(dir, "edge", "prod", "api.stack.yaml"))
	writeFile(t, filepath.Join(dir, "edge", "notes.yaml"))

	result, err := Discover(Options{Paths: []string{dir + "/..."}})
	require.NoError(t, err)

	// Depth-first walk order, lexical within each directory
	assert.Equal(t, []string{
		filepath.Join(dir, "edge", "prod", "api.stack.yaml"),
		filepath.Join(dir, "edge", "stack.yml"),
		filepath.Join(dir, "stack.yaml"),
	}, result.Stacks)
}

func TestDiscover_SkipsHiddenAndVendor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stack.yaml"))
	writeFile(t, filepath.Join(dir, ".git", "stack.yaml"))
	writeFile(t, filepath.Join(dir, "vendor", "stack.yaml"))
	writeFile(t, filepath.Join(dir, "_build", "stack.yaml"))
	writeFile(t, filepath.Join(dir, "testdata", "stack.yaml"))

	result, err := Discover(Options{Paths: []string{dir + "/..."}})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "stack.yaml")}, result.Stacks)
}

func TestDiscover_DedupesOverlappingPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.yaml")
	writeFile(t, path)

	result, err := Discover(Options{Paths: []string{path, dir, dir + "/..."}})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, result.Stacks)
}

func TestDiscover_MissingPath(t *testing.T) {
	_, err := Discover(Options{Paths: []string{filepath.Join(t.TempDir(), "absent")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovering")
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "stack.yaml"))
	t.Chdir(dir)

	result, err := Discover(Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"stack.yaml"}, result.Stacks)
}

func TestIsStackFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"stack.yaml", true},
		{"stack.yml", true},
		{"infra/stack.yaml", true},
		{"orders.stack.yaml", true},
		{"orders.stack.yml", true},
		{"stack.json", false},
		{"mystack.yaml", false},
		{"notes.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStackFile(tt.path))
		})
	}
}
