package apigateway

// RestApi represents an AWS::ApiGateway::RestApi resource.
type RestApi struct {
	// Name is the name of the REST API.
	Name any `json:"Name,omitempty"`

	// Description is a description of the REST API.
	Description string `json:"Description,omitempty"`

	// Policy is the resource policy attached directly to the API.
	Policy any `json:"Policy,omitempty"`

	// EndpointConfiguration describes the endpoint types of the API.
	EndpointConfiguration *RestApi_EndpointConfiguration `json:"EndpointConfiguration,omitempty"`

	// BinaryMediaTypes lists the media types treated as binary payloads.
	BinaryMediaTypes []string `json:"BinaryMediaTypes,omitempty"`

	// MinimumCompressionSize enables payload compression at or above the
	// given body size in bytes. Nil leaves compression disabled.
	MinimumCompressionSize *int `json:"MinimumCompressionSize,omitempty"`

	// DisableExecuteApiEndpoint disables the default execute-api endpoint.
	DisableExecuteApiEndpoint bool `json:"DisableExecuteApiEndpoint,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r RestApi) ResourceType() string { return "AWS::ApiGateway::RestApi" }

// RestApi_EndpointConfiguration is the EndpointConfiguration property of a RestApi.
type RestApi_EndpointConfiguration struct {
	// Types lists the endpoint types. A private API uses ["PRIVATE"].
	Types []string `json:"Types,omitempty"`

	// VpcEndpointIds lists the VPC interface endpoints bound to a PRIVATE API.
	VpcEndpointIds []any `json:"VpcEndpointIds,omitempty"`
}
