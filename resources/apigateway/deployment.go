package apigateway

// Deployment represents an AWS::ApiGateway::Deployment resource.
//
// A deployment snapshots the API's methods. CloudFormation requires at least
// one method to exist before the deployment is created, so deployments carry
// DependsOn entries for the methods they snapshot.
type Deployment struct {
	// RestApiId identifies the REST API being deployed.
	RestApiId any `json:"RestApiId,omitempty"`

	// Description is a description of the deployment.
	Description string `json:"Description,omitempty"`

	// StageName creates an implicit stage with the given name. Leave empty
	// when the stage is declared as its own resource.
	StageName string `json:"StageName,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Deployment) ResourceType() string { return "AWS::ApiGateway::Deployment" }
