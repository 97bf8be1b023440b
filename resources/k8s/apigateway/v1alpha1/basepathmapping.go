package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BasePathMapping represents an ACK API Gateway BasePathMapping resource.
// +kubebuilder:object:root=true
type BasePathMapping struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BasePathMappingSpec   `json:"spec,omitempty"`
	Status BasePathMappingStatus `json:"status,omitempty"`
}

// BasePathMappingSpec defines the desired state of a BasePathMapping.
type BasePathMappingSpec struct {
	// DomainName is the custom domain being mapped.
	DomainName string `json:"domainName"`

	// RestAPIID identifies the REST API the domain maps to.
	RestAPIID *string `json:"restAPIID,omitempty"`

	// RestAPIRef is a reference to a RestAPI resource.
	RestAPIRef *AWSResourceReferenceWrapper `json:"restAPIRef,omitempty"`

	// Stage is the name of the stage the domain maps to.
	Stage *string `json:"stage,omitempty"`

	// BasePath is the path prefix under the domain. Empty means the root path.
	BasePath *string `json:"basePath,omitempty"`
}

// BasePathMappingStatus defines the observed state of a BasePathMapping.
type BasePathMappingStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`
}
