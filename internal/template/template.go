// Package template renders gateway resources into CloudFormation templates.
package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	privategw "github.com/lex00/privategw-go"
	"github.com/lex00/privategw-go/internal/serialize"
)

// Builder assembles a CloudFormation template from typed resources.
type Builder struct {
	description string
	names       []string // insertion order
	resources   map[string]privategw.NamedResource
	outputs     map[string]privategw.Output
}

// NewBuilder creates an empty template builder.
func NewBuilder() *Builder {
	return &Builder{
		resources: make(map[string]privategw.NamedResource),
		outputs:   make(map[string]privategw.Output),
	}
}

// SetDescription sets the template description.
func (b *Builder) SetDescription(desc string) {
	b.description = desc
}

// AddResource registers a resource under its logical ID. Extra names in
// dependsOn become explicit DependsOn entries in the emitted template.
func (b *Builder) AddResource(name string, resource privategw.Resource, dependsOn ...string) error {
	if name == "" {
		return errors.New("resource logical ID must not be empty")
	}
	if _, exists := b.resources[name]; exists {
		return fmt.Errorf("duplicate resource logical ID: %s", name)
	}

	b.names = append(b.names, name)
	b.resources[name] = privategw.NamedResource{
		Name:      name,
		Resource:  resource,
		DependsOn: dependsOn,
	}
	return nil
}

// AddOutput registers a template output under its logical name.
func (b *Builder) AddOutput(name string, output privategw.Output) {
	b.outputs[name] = output
}

// Build constructs the CloudFormation template.
func (b *Builder) Build() (*privategw.Template, error) {
	// Serialize every resource first so references can be extracted
	props := make(map[string]map[string]any, len(b.resources))
	deps := make(map[string][]string, len(b.resources))

	for _, name := range b.names {
		res := b.resources[name]

		serialized, err := serialize.Resource(res.Resource)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		props[name] = serialized

		deps[name] = b.dependenciesFor(name, serialized, res.DependsOn)
	}

	// Dependency order; rejects circular references
	order, err := b.topologicalSort(deps)
	if err != nil {
		return nil, err
	}

	template := &privategw.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]privategw.ResourceDef, len(order)),
	}

	for _, name := range order {
		res := b.resources[name]

		var explicit []string
		if len(res.DependsOn) > 0 {
			explicit = append([]string(nil), res.DependsOn...)
			sort.Strings(explicit)
		}

		template.Resources[name] = privategw.ResourceDef{
			Type:       res.Resource.ResourceType(),
			Properties: props[name],
			DependsOn:  explicit,
		}
	}

	if len(b.outputs) > 0 {
		template.Outputs = make(map[string]privategw.Output, len(b.outputs))
		for name, output := range b.outputs {
			value, err := normalizeValue(output.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			output.Value = value
			template.Outputs[name] = output
		}
	}

	return template, nil
}

// normalizeValue reduces an output value to plain JSON types so intrinsics
// keep their wire shape under both JSON and YAML rendering.
func normalizeValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// dependenciesFor merges explicit DependsOn entries with the references
// found in the serialized properties.
func (b *Builder) dependenciesFor(name string, props map[string]any, explicit []string) []string {
	seen := make(map[string]bool)
	var deps []string

	add := func(dep string) {
		if dep == name || seen[dep] {
			return
		}
		if _, known := b.resources[dep]; !known {
			return
		}
		seen[dep] = true
		deps = append(deps, dep)
	}

	for _, dep := range explicit {
		add(dep)
	}
	for _, dep := range extractRefs(props) {
		add(dep)
	}

	sort.Strings(deps)
	return deps
}

// extractRefs walks serialized properties collecting Ref and Fn::GetAtt
// targets.
func extractRefs(value any) []string {
	var refs []string

	switch v := value.(type) {
	case map[string]any:
		if target, ok := v["Ref"].(string); ok && len(v) == 1 {
			return []string{target}
		}
		if target, ok := v["Fn::GetAtt"]; ok && len(v) == 1 {
			switch att := target.(type) {
			case []any:
				if len(att) > 0 {
					if name, ok := att[0].(string); ok {
						return []string{name}
					}
				}
			case []string:
				if len(att) > 0 {
					return []string{att[0]}
				}
			}
			return nil
		}
		for _, val := range v {
			refs = append(refs, extractRefs(val)...)
		}

	case []any:
		for _, elem := range v {
			refs = append(refs, extractRefs(elem)...)
		}
	}

	return refs
}

// topologicalSort returns resources in dependency order.
func (b *Builder) topologicalSort(deps map[string][]string) ([]string, error) {
	// Build adjacency list
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, resDeps := range deps {
		for _, dep := range resDeps {
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	// Kahn's algorithm
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue) // Deterministic order

	var result []string
	for len(queue) > 0 {
		// Pop from queue
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		// Process neighbors
		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue) // Keep sorted for determinism
			}
		}
	}

	// Check for cycles
	if len(result) != len(b.resources) {
		return nil, detectCycle(b.names, deps)
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency graph.
func detectCycle(names []string, deps map[string][]string) error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range deps[node] {
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	for _, name := range names {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		// Format cycle for error message
		msg := "circular dependency detected:\n"
		for i, name := range cycle {
			msg += fmt.Sprintf("  %s", name)
			if i < len(cycle)-1 {
				msg += "\n    → "
			}
		}
		return errors.New(msg)
	}

	return errors.New("circular dependency detected")
}

// FromGateway renders a built gateway into a CloudFormation template.
func FromGateway(gw *privategw.Gateway) (*privategw.Template, error) {
	b := NewBuilder()
	b.SetDescription(privategw.StackDescription(gw.StageName()))

	// Duplicate domains collide on a mapping logical ID. The gateway passes
	// them through untouched, so collapse here the way a document with a
	// repeated key reads: the last entry wins.
	resources := gw.Resources()
	ordered := make([]privategw.NamedResource, 0, len(resources))
	index := make(map[string]int, len(resources))
	for _, res := range resources {
		if i, ok := index[res.Name]; ok {
			ordered[i] = res
			continue
		}
		index[res.Name] = len(ordered)
		ordered = append(ordered, res)
	}
	for _, res := range ordered {
		if err := b.AddResource(res.Name, res.Resource, res.DependsOn...); err != nil {
			return nil, err
		}
	}
	for name, output := range gw.Outputs() {
		b.AddOutput(name, output)
	}

	return b.Build()
}

// ToJSON serializes the template to JSON.
func ToJSON(t *privategw.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *privategw.Template) ([]byte, error) {
	return yaml.Marshal(t)
}

// ManifestsYAML renders ACK manifests as one multi-document YAML stream.
// Each object passes through a JSON round trip first so its json tags drive
// the field names; the apimachinery types carry no yaml tags.
func ManifestsYAML(objects []any) ([]byte, error) {
	var buf bytes.Buffer
	for i, obj := range objects {
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("serializing manifest %d: %w", i, err)
		}
		var plain any
		if err := json.Unmarshal(data, &plain); err != nil {
			return nil, fmt.Errorf("serializing manifest %d: %w", i, err)
		}
		rendered, err := yaml.Marshal(plain)
		if err != nil {
			return nil, fmt.Errorf("serializing manifest %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(rendered)
	}
	return buf.Bytes(), nil
}
