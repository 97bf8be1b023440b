package apigateway

// DomainName represents an AWS::ApiGateway::DomainName resource.
type DomainName struct {
	// DomainName is the custom domain name.
	DomainName string `json:"DomainName,omitempty"`

	// CertificateArn is the certificate for an edge-optimized domain.
	CertificateArn any `json:"CertificateArn,omitempty"`

	// RegionalCertificateArn is the certificate for a regional domain.
	RegionalCertificateArn any `json:"RegionalCertificateArn,omitempty"`

	// EndpointConfiguration describes the endpoint types of the domain.
	EndpointConfiguration *DomainName_EndpointConfiguration `json:"EndpointConfiguration,omitempty"`

	// SecurityPolicy is the minimum TLS version (TLS_1_0 or TLS_1_2).
	SecurityPolicy string `json:"SecurityPolicy,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DomainName) ResourceType() string { return "AWS::ApiGateway::DomainName" }

// DomainName_EndpointConfiguration is the EndpointConfiguration property of a DomainName.
type DomainName_EndpointConfiguration struct {
	// Types lists the endpoint types of the domain.
	Types []string `json:"Types,omitempty"`
}
