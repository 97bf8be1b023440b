package apigateway

// Stage represents an AWS::ApiGateway::Stage resource.
type Stage struct {
	// RestApiId identifies the REST API the stage belongs to.
	RestApiId any `json:"RestApiId,omitempty"`

	// DeploymentId identifies the deployment the stage serves.
	DeploymentId any `json:"DeploymentId,omitempty"`

	// StageName is the name of the stage, used in invoke paths.
	StageName string `json:"StageName,omitempty"`

	// Description is a description of the stage.
	Description string `json:"Description,omitempty"`

	// Variables are stage variables available to integrations.
	Variables map[string]any `json:"Variables,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Stage) ResourceType() string { return "AWS::ApiGateway::Stage" }
