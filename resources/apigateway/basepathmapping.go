package apigateway

// BasePathMapping represents an AWS::ApiGateway::BasePathMapping resource.
//
// A mapping ties a custom domain (plus an optional path prefix) to one
// deployed stage of a REST API.
type BasePathMapping struct {
	// DomainName is the custom domain being mapped.
	DomainName any `json:"DomainName,omitempty"`

	// RestApiId identifies the REST API the domain maps to.
	RestApiId any `json:"RestApiId,omitempty"`

	// Stage is the name of the stage the domain maps to.
	Stage string `json:"Stage,omitempty"`

	// BasePath is the path prefix under the domain. Empty means the root path.
	BasePath string `json:"BasePath,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r BasePathMapping) ResourceType() string { return "AWS::ApiGateway::BasePathMapping" }
