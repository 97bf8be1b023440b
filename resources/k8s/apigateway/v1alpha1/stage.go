package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Stage represents an ACK API Gateway Stage resource.
// +kubebuilder:object:root=true
type Stage struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StageSpec   `json:"spec,omitempty"`
	Status StageStatus `json:"status,omitempty"`
}

// StageSpec defines the desired state of a Stage.
type StageSpec struct {
	// RestAPIID identifies the REST API the stage belongs to.
	RestAPIID *string `json:"restAPIID,omitempty"`

	// RestAPIRef is a reference to a RestAPI resource.
	RestAPIRef *AWSResourceReferenceWrapper `json:"restAPIRef,omitempty"`

	// DeploymentID identifies the deployment the stage serves.
	DeploymentID *string `json:"deploymentID,omitempty"`

	// DeploymentRef is a reference to a Deployment resource.
	DeploymentRef *AWSResourceReferenceWrapper `json:"deploymentRef,omitempty"`

	// StageName is the name of the stage, used in invoke paths.
	StageName string `json:"stageName"`

	// Description is a description of the stage.
	Description *string `json:"description,omitempty"`

	// Variables are stage variables available to integrations.
	Variables map[string]*string `json:"variables,omitempty"`
}

// StageStatus defines the observed state of a Stage.
type StageStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// CreatedDate is the date and time the stage was created.
	CreatedDate *metav1.Time `json:"createdDate,omitempty"`

	// LastUpdatedDate is the date and time the stage was last updated.
	LastUpdatedDate *metav1.Time `json:"lastUpdatedDate,omitempty"`
}
