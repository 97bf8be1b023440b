package ec2

// VPCEndpoint represents an AWS::EC2::VPCEndpoint resource.
//
// An interface endpoint for the execute-api service is what makes a private
// REST API reachable from inside a VPC.
type VPCEndpoint struct {
	// ServiceName is the endpoint service, e.g.
	// "com.amazonaws.us-east-1.execute-api".
	ServiceName any `json:"ServiceName,omitempty"`

	// VpcId identifies the VPC the endpoint lives in.
	VpcId any `json:"VpcId,omitempty"`

	// VpcEndpointType is the endpoint type (Interface, Gateway, GatewayLoadBalancer).
	VpcEndpointType string `json:"VpcEndpointType,omitempty"`

	// SubnetIds are the subnets the interface endpoint places ENIs in.
	SubnetIds []any `json:"SubnetIds,omitempty"`

	// SecurityGroupIds are the security groups attached to the endpoint ENIs.
	SecurityGroupIds []any `json:"SecurityGroupIds,omitempty"`

	// PrivateDnsEnabled resolves the service's default DNS name to the endpoint.
	PrivateDnsEnabled bool `json:"PrivateDnsEnabled,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r VPCEndpoint) ResourceType() string { return "AWS::EC2::VPCEndpoint" }
