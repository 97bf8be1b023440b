package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Deployment represents an ACK API Gateway Deployment resource.
// +kubebuilder:object:root=true
type Deployment struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DeploymentSpec   `json:"spec,omitempty"`
	Status DeploymentStatus `json:"status,omitempty"`
}

// DeploymentSpec defines the desired state of a Deployment.
type DeploymentSpec struct {
	// RestAPIID identifies the REST API being deployed.
	RestAPIID *string `json:"restAPIID,omitempty"`

	// RestAPIRef is a reference to a RestAPI resource.
	RestAPIRef *AWSResourceReferenceWrapper `json:"restAPIRef,omitempty"`

	// Description is a description of the deployment.
	Description *string `json:"description,omitempty"`

	// StageName creates an implicit stage with the given name.
	StageName *string `json:"stageName,omitempty"`
}

// DeploymentStatus defines the observed state of a Deployment.
type DeploymentStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// ID is the identifier API Gateway assigned to the deployment.
	ID *string `json:"id,omitempty"`

	// CreatedDate is the date and time the deployment was created.
	CreatedDate *metav1.Time `json:"createdDate,omitempty"`
}
