// Package v1alpha1 contains ACK API Gateway resource types for Kubernetes-native AWS infrastructure management.
//
// These types enable managing private REST APIs, stages, and base-path
// mappings using Kubernetes CRDs via AWS Controllers for Kubernetes (ACK).
// Gateway.Manifests() emits them for every resource the construct builds.
//
// Example usage:
//
//	import (
//		apigwv1alpha1 "github.com/lex00/privategw-go/resources/k8s/apigateway/v1alpha1"
//		metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
//	)
//
//	var API = apigwv1alpha1.RestAPI{
//		ObjectMeta: metav1.ObjectMeta{
//			Name:      "prod-private-api",
//			Namespace: "ack-system",
//		},
//		Spec: apigwv1alpha1.RestAPISpec{
//			Name:   "prod-private-api",
//			Policy: strPtr(`{"Version":"2012-10-17"...}`),
//		},
//	}
package v1alpha1
