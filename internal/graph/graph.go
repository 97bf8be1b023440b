// Package graph generates DOT and Mermaid dependency graphs from built templates.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	privategw "github.com/lex00/privategw-go"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from built templates.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool

	// IncludeOutputs adds template outputs and the resources they reference.
	IncludeOutputs bool
}

// Generate creates a dependency graph for the template and writes it to w.
func (g *Generator) Generate(tmpl *privategw.Template, w io.Writer) error {
	graph := g.buildGraph(tmpl)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(tmpl *privategw.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(tmpl, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from the template.
func (g *Generator) buildGraph(tmpl *privategw.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	if g.ClusterByService {
		g.addClusteredNodes(graph, tmpl, names)
	} else {
		for _, name := range names {
			n := graph.Node(name)
			n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
		}
	}

	for _, name := range names {
		for _, edge := range referenceEdges(tmpl.Resources[name]) {
			if _, ok := tmpl.Resources[edge.target]; !ok {
				continue
			}
			e := graph.Edge(graph.Node(name), graph.Node(edge.target))
			if edge.getAtt {
				e.Attr("color", "blue")
			}
		}
	}

	if g.IncludeOutputs {
		g.addOutputNodes(graph, tmpl)
	}

	return graph
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, tmpl *privategw.Template, names []string) {
	serviceResources := make(map[string][]string)
	for _, name := range names {
		service := extractService(tmpl.Resources[name].Type)
		serviceResources[service] = append(serviceResources[service], name)
	}

	services := make([]string, 0, len(serviceResources))
	for service := range serviceResources {
		services = append(services, service)
	}
	sort.Strings(services)

	for _, service := range services {
		resNames := serviceResources[service]
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\\n[" + tmpl.Resources[name].Type + "]")
			}
		}
	}
}

// addOutputNodes adds dashed ellipse nodes for outputs with edges to the
// resources their values reference.
func (g *Generator) addOutputNodes(graph *dot.Graph, tmpl *privategw.Template) {
	names := make([]string, 0, len(tmpl.Outputs))
	for name := range tmpl.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n := graph.Node(name)
		n.Attr("shape", "ellipse")
		n.Attr("style", "dashed")
		n.Label(name)

		for _, edge := range valueEdges(tmpl.Outputs[name].Value) {
			if _, ok := tmpl.Resources[edge.target]; ok {
				graph.Edge(n, graph.Node(edge.target))
			}
		}
	}
}

// refEdge is one dependency edge extracted from a resource definition.
type refEdge struct {
	target string
	getAtt bool
}

// referenceEdges collects the distinct targets a resource points at through
// Ref, GetAtt, and explicit DependsOn. GetAtt wins when both reference forms
// name the same target.
func referenceEdges(def privategw.ResourceDef) []refEdge {
	targets := make(map[string]bool)
	for _, edge := range valueEdges(def.Properties) {
		targets[edge.target] = targets[edge.target] || edge.getAtt
	}
	for _, dep := range def.DependsOn {
		if _, ok := targets[dep]; !ok {
			targets[dep] = false
		}
	}

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	edges := make([]refEdge, 0, len(names))
	for _, name := range names {
		edges = append(edges, refEdge{target: name, getAtt: targets[name]})
	}
	return edges
}

// valueEdges walks a serialized property value for intrinsic references.
func valueEdges(value any) []refEdge {
	var edges []refEdge

	switch v := value.(type) {
	case map[string]any:
		if len(v) == 1 {
			if ref, ok := v["Ref"].(string); ok {
				return []refEdge{{target: ref}}
			}
			if getAtt, ok := v["Fn::GetAtt"]; ok {
				switch att := getAtt.(type) {
				case []any:
					if len(att) > 0 {
						if name, ok := att[0].(string); ok {
							return []refEdge{{target: name, getAtt: true}}
						}
					}
				case []string:
					if len(att) > 0 {
						return []refEdge{{target: att[0], getAtt: true}}
					}
				}
			}
		}
		for _, nested := range v {
			edges = append(edges, valueEdges(nested)...)
		}
	case []any:
		for _, item := range v {
			edges = append(edges, valueEdges(item)...)
		}
	}

	return edges
}

// extractService extracts the AWS service name from a CloudFormation type.
// e.g., "AWS::ApiGateway::RestApi" -> "ApiGateway"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) >= 2 {
		return parts[1]
	}
	return "Other"
}
