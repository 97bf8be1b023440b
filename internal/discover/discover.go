// Package discover locates stack files in a directory tree.
//
// A stack file is named stack.yaml or stack.yml, or carries a .stack.yaml
// suffix, e.g. orders.stack.yaml. Search paths may use the dir/... form to
// walk a tree recursively.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options configures a discovery walk.
type Options struct {
	// Paths to search: files, directories, or dir/... patterns.
	// Empty means the current directory.
	Paths []string
}

// Result holds discovered stack files in walk order.
type Result struct {
	// Stacks are stack file paths, lexically ordered within each search path
	Stacks []string
	// Errors encountered on subtrees that did not stop the walk
	Errors []error
}

// Discover locates stack files under the given paths. An explicit file path
// is accepted as-is; a directory is searched non-recursively unless given
// as dir/... . Unreadable subtrees are reported in Result.Errors; a search
// path that cannot be read at all fails the call.
func Discover(opts Options) (*Result, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	result := &Result{}
	seen := make(map[string]bool)
	for _, path := range paths {
		if err := discoverPath(path, result, seen); err != nil {
			return nil, fmt.Errorf("discovering %s: %w", path, err)
		}
	}
	return result, nil
}

func discoverPath(pattern string, result *Result, seen map[string]bool) error {
	recursive := false
	if strings.HasSuffix(pattern, "/...") {
		recursive = true
		pattern = strings.TrimSuffix(pattern, "/...")
	} else if pattern == "..." {
		recursive = true
		pattern = "."
	}

	info, err := os.Stat(pattern)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if !IsStackFile(pattern) {
			return fmt.Errorf("%s is not a stack file", pattern)
		}
		addStack(result, seen, pattern)
		return nil
	}

	if recursive {
		return filepath.WalkDir(pattern, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				result.Errors = append(result.Errors, err)
				return nil
			}
			if d.IsDir() {
				if path != pattern && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsStackFile(path) {
				addStack(result, seen, path)
			}
			return nil
		})
	}

	entries, err := os.ReadDir(pattern)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(pattern, entry.Name())
		if IsStackFile(path) {
			addStack(result, seen, path)
		}
	}
	return nil
}

// skipDir reports whether a walk should skip a directory entirely.
// Hidden and underscore-prefixed directories follow the Go tool convention.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	return name == "vendor" || name == "node_modules" || name == "testdata"
}

func addStack(result *Result, seen map[string]bool, path string) {
	path = filepath.Clean(path)
	if seen[path] {
		return
	}
	seen[path] = true
	result.Stacks = append(result.Stacks, path)
}

// IsStackFile reports whether a path names a stack file.
func IsStackFile(path string) bool {
	name := filepath.Base(path)
	if name == "stack.yaml" || name == "stack.yml" {
		return true
	}
	return strings.HasSuffix(name, ".stack.yaml") || strings.HasSuffix(name, ".stack.yml")
}
