// Package differ compares CloudFormation templates semantically.
//
// `privategw build --check` uses it to tell whether the template on disk
// still matches what the stack file builds; `privategw diff` exposes the
// same comparison for any two template files.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	privategw "github.com/lex00/privategw-go"
)

// Result describes how two templates differ.
type Result struct {
	Diff    privategw.TemplateDiff `json:"diff"`
	Summary privategw.DiffSummary  `json:"summary"`

	// DescriptionChanged reports a changed template description.
	DescriptionChanged bool `json:"description_changed"`

	// OutputChanges lists added, removed and modified outputs.
	OutputChanges []string `json:"output_changes,omitempty"`
}

// InSync reports whether the templates matched.
func (r *Result) InSync() bool {
	return r.Summary.Total == 0 && !r.DescriptionChanged && len(r.OutputChanges) == 0
}

// Compare diffs two templates resource by resource. Both sides pass through
// a JSON round trip first, so a template parsed from YAML (integers decode
// as int) compares equal to one built in memory (numbers unmarshal as
// float64). Array order stays significant: the endpoint policy's deny
// statement must precede its allow.
func Compare(before, after *privategw.Template) (*Result, error) {
	before, err := normalizeTemplate(before)
	if err != nil {
		return nil, fmt.Errorf("normalizing first template: %w", err)
	}
	after, err = normalizeTemplate(after)
	if err != nil {
		return nil, fmt.Errorf("normalizing second template: %w", err)
	}

	result := &Result{}

	for name, def := range after.Resources {
		if _, exists := before.Resources[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, privategw.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}
	for name, def := range before.Resources {
		if _, exists := after.Resources[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, privategw.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}
	for name, beforeDef := range before.Resources {
		afterDef, exists := after.Resources[name]
		if !exists {
			continue
		}
		if changes := compareResources(beforeDef, afterDef); len(changes) > 0 {
			result.Diff.Modified = append(result.Diff.Modified, privategw.DiffEntry{
				Resource: name,
				Type:     beforeDef.Type,
				Changes:  changes,
			})
		}
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.DescriptionChanged = before.Description != after.Description
	result.OutputChanges = compareOutputs(before.Outputs, after.Outputs)

	result.Summary = privategw.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles diffs two template files.
func CompareFiles(beforePath, afterPath string) (*Result, error) {
	before, err := LoadTemplate(beforePath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", beforePath, err)
	}
	after, err := LoadTemplate(afterPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", afterPath, err)
	}
	return Compare(before, after)
}

// LoadTemplate reads a template from a JSON or YAML file.
func LoadTemplate(path string) (*privategw.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var template privategw.Template
	if err := json.Unmarshal(data, &template); err != nil {
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("%s is neither template JSON nor YAML: %w", path, err)
		}
	}
	return &template, nil
}

func normalizeTemplate(t *privategw.Template) (*privategw.Template, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var out privategw.Template
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func compareResources(before, after privategw.ResourceDef) []string {
	var changes []string

	if before.Type != after.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s -> %s", before.Type, after.Type))
	}
	compareProperties("", before.Properties, after.Properties, &changes)
	if !equalStringSlices(before.DependsOn, after.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}

	sort.Strings(changes)
	return changes
}

// compareProperties walks both property maps, descending into nested maps
// so a change reports its full property path.
func compareProperties(prefix string, before, after map[string]any, changes *[]string) {
	for key, afterVal := range after {
		path := joinPath(prefix, key)
		beforeVal, exists := before[key]
		if !exists {
			*changes = append(*changes, path+" added")
			continue
		}
		beforeMap, beforeIsMap := beforeVal.(map[string]any)
		afterMap, afterIsMap := afterVal.(map[string]any)
		if beforeIsMap && afterIsMap {
			compareProperties(path, beforeMap, afterMap, changes)
			continue
		}
		if !reflect.DeepEqual(beforeVal, afterVal) {
			*changes = append(*changes, path+" modified")
		}
	}
	for key := range before {
		if _, exists := after[key]; !exists {
			*changes = append(*changes, joinPath(prefix, key)+" removed")
		}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// compareOutputs reports output drift by name.
func compareOutputs(before, after map[string]privategw.Output) []string {
	var changes []string
	for name, afterOut := range after {
		beforeOut, exists := before[name]
		if !exists {
			changes = append(changes, fmt.Sprintf("output %s added", name))
			continue
		}
		if !reflect.DeepEqual(beforeOut, afterOut) {
			changes = append(changes, fmt.Sprintf("output %s modified", name))
		}
	}
	for name := range before {
		if _, exists := after[name]; !exists {
			changes = append(changes, fmt.Sprintf("output %s removed", name))
		}
	}
	sort.Strings(changes)
	return changes
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortEntries(entries []privategw.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
