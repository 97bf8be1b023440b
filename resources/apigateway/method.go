package apigateway

// Method represents an AWS::ApiGateway::Method resource.
type Method struct {
	// RestApiId identifies the REST API the method belongs to.
	RestApiId any `json:"RestApiId,omitempty"`

	// ResourceId identifies the API resource the method is defined on.
	ResourceId any `json:"ResourceId,omitempty"`

	// HttpMethod is the HTTP verb (GET, POST, ANY, ...).
	HttpMethod string `json:"HttpMethod,omitempty"`

	// AuthorizationType is the method's authorization type (NONE, AWS_IAM, ...).
	AuthorizationType string `json:"AuthorizationType,omitempty"`

	// ApiKeyRequired requires callers to present an API key.
	ApiKeyRequired bool `json:"ApiKeyRequired,omitempty"`

	// Integration is the backend integration for the method.
	Integration *Method_Integration `json:"Integration,omitempty"`

	// MethodResponses are the responses the method can return.
	MethodResponses []any `json:"MethodResponses,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Method) ResourceType() string { return "AWS::ApiGateway::Method" }

// Method_Integration is the Integration property of a Method.
type Method_Integration struct {
	// Type_ is the integration type (MOCK, HTTP, AWS, AWS_PROXY, HTTP_PROXY).
	Type_ string `json:"Type,omitempty"`

	// IntegrationHttpMethod is the HTTP verb used to call the backend.
	IntegrationHttpMethod string `json:"IntegrationHttpMethod,omitempty"`

	// Uri is the backend endpoint.
	Uri any `json:"Uri,omitempty"`

	// RequestTemplates map content types to request mapping templates.
	RequestTemplates map[string]any `json:"RequestTemplates,omitempty"`

	// IntegrationResponses are the backend response mappings.
	IntegrationResponses []any `json:"IntegrationResponses,omitempty"`
}

// Method_IntegrationResponse is a single IntegrationResponses entry.
type Method_IntegrationResponse struct {
	// StatusCode is the method response status the backend response maps to.
	StatusCode string `json:"StatusCode,omitempty"`

	// ResponseTemplates map content types to response mapping templates.
	ResponseTemplates map[string]any `json:"ResponseTemplates,omitempty"`
}

// Method_MethodResponse is a single MethodResponses entry.
type Method_MethodResponse struct {
	// StatusCode is the status code the method can return.
	StatusCode string `json:"StatusCode,omitempty"`
}
