package apigateway

// Resource represents an AWS::ApiGateway::Resource resource, a single path
// part under an API's resource tree.
type Resource struct {
	// RestApiId identifies the REST API the resource belongs to.
	RestApiId any `json:"RestApiId,omitempty"`

	// ParentId identifies the parent resource, usually the API's root.
	ParentId any `json:"ParentId,omitempty"`

	// PathPart is the last segment of the resource's path.
	PathPart string `json:"PathPart,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Resource) ResourceType() string { return "AWS::ApiGateway::Resource" }
