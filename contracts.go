// Package privategw builds private API Gateway resource descriptions.
//
// The package translates one configuration record into the declarative
// resources for a REST API that is reachable only through a single VPC
// interface endpoint, plus one base-path mapping per custom domain:
//
//	gw, err := privategw.Build(privategw.Config{
//	    Stage:       "prod",
//	    Domains:     []string{"internal-api.example.com"},
//	    VpcEndpoint: "vpce-0f1e2d3c4b5a69788",
//	})
//
// Build has no side effects: it returns an immutable description that the
// privategw CLI renders to a CloudFormation template or to ACK manifests.
package privategw

import (
	"encoding/json"
)

// Resource represents a CloudFormation resource.
// All resource types under resources/ (apigateway.RestApi, ec2.VPCEndpoint,
// and so on) implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::ApiGateway::RestApi")
	ResourceType() string
}

// AttrRef represents a GetAtt reference to a resource attribute.
//
// The gateway hands these out for wiring attached resources, for example
// the REST API's root resource id:
//
//	parent := gw.RootResourceAttr()
//
// When serialized to CloudFormation JSON, AttrRef becomes:
//
//	{"Fn::GetAtt": ["PrivateRestApi", "RootResourceId"]}
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "RootResourceId")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// NamedResource pairs a resource with the logical name and dependencies it
// will carry in the emitted template. Build returns these in emission order.
type NamedResource struct {
	// Name is the CloudFormation logical ID
	Name string
	// Resource is the typed resource value
	Resource Resource
	// DependsOn are logical names this resource must be created after,
	// beyond what its intrinsic references already imply
	DependsOn []string
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// BuildResult is the JSON output from `privategw build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// LintResult is the JSON output from `privategw lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Rule     string `json:"rule"`
}

// ValidateResult is the JSON output from `privategw validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `privategw list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Stack string `json:"stack,omitempty"`
}

// TemplateDiff describes the difference between two templates.
type TemplateDiff struct {
	Added    []DiffEntry `json:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty"`
}

// DiffEntry is a single changed resource in a template diff.
type DiffEntry struct {
	Resource string   `json:"resource"`
	Type     string   `json:"type"`
	Changes  []string `json:"changes,omitempty"`
}

// DiffSummary counts the entries in a TemplateDiff.
type DiffSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}
