package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// GroupVersion identifies the ACK API group these types belong to.
const GroupVersion = "apigateway.services.k8s.aws/v1alpha1"

// RestAPI represents an ACK API Gateway RestAPI resource.
// +kubebuilder:object:root=true
type RestAPI struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   RestAPISpec   `json:"spec,omitempty"`
	Status RestAPIStatus `json:"status,omitempty"`
}

// RestAPISpec defines the desired state of a RestAPI.
type RestAPISpec struct {
	// Name is the name of the REST API.
	Name string `json:"name"`

	// Description is a description of the REST API.
	Description *string `json:"description,omitempty"`

	// Policy is the JSON resource policy attached to the API.
	Policy *string `json:"policy,omitempty"`

	// EndpointConfiguration describes the endpoint types of the API.
	EndpointConfiguration *EndpointConfiguration `json:"endpointConfiguration,omitempty"`

	// BinaryMediaTypes lists the media types treated as binary payloads.
	BinaryMediaTypes []*string `json:"binaryMediaTypes,omitempty"`

	// MinimumCompressionSize enables payload compression at or above the
	// given body size in bytes.
	MinimumCompressionSize *int64 `json:"minimumCompressionSize,omitempty"`

	// DisableExecuteAPIEndpoint disables the default execute-api endpoint.
	DisableExecuteAPIEndpoint *bool `json:"disableExecuteAPIEndpoint,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags map[string]*string `json:"tags,omitempty"`
}

// RestAPIStatus defines the observed state of a RestAPI.
type RestAPIStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// ID is the identifier API Gateway assigned to the REST API.
	ID *string `json:"id,omitempty"`

	// RootResourceID is the identifier of the API's root resource.
	RootResourceID *string `json:"rootResourceID,omitempty"`

	// CreatedDate is the date and time the REST API was created.
	CreatedDate *metav1.Time `json:"createdDate,omitempty"`
}

// EndpointConfiguration describes the endpoint types of a REST API.
type EndpointConfiguration struct {
	// Types lists the endpoint types. A private API uses ["PRIVATE"].
	Types []*string `json:"types,omitempty"`

	// VPCEndpointIDs lists the VPC interface endpoints bound to a PRIVATE API.
	VPCEndpointIDs []*string `json:"vpcEndpointIDs,omitempty"`
}

// ACKResourceMetadata contains ACK-specific metadata.
type ACKResourceMetadata struct {
	// ARN is the Amazon Resource Name.
	ARN *string `json:"arn,omitempty"`

	// OwnerAccountID is the AWS account ID of the resource owner.
	OwnerAccountID *string `json:"ownerAccountID,omitempty"`

	// Region is the AWS region.
	Region *string `json:"region,omitempty"`
}

// Condition represents a condition.
type Condition struct {
	// Type is the type of condition.
	Type *string `json:"type,omitempty"`

	// Status is the status of the condition.
	Status *string `json:"status,omitempty"`

	// LastTransitionTime is when the condition last transitioned.
	LastTransitionTime *metav1.Time `json:"lastTransitionTime,omitempty"`

	// Message is a human-readable message.
	Message *string `json:"message,omitempty"`

	// Reason is a brief reason for the condition.
	Reason *string `json:"reason,omitempty"`
}

// AWSResourceReferenceWrapper wraps an AWS resource reference.
type AWSResourceReferenceWrapper struct {
	// From contains the reference information.
	From *AWSResourceReference `json:"from,omitempty"`
}

// AWSResourceReference references an AWS resource.
type AWSResourceReference struct {
	// Name is the name of the resource.
	Name *string `json:"name,omitempty"`
}
