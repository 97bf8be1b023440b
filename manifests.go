package privategw

import (
	"encoding/json"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lex00/privategw-go/intrinsics"
	apigwv1alpha1 "github.com/lex00/privategw-go/resources/k8s/apigateway/v1alpha1"
)

// DefaultNamespace is the namespace ACK manifests are emitted into when no
// namespace is given.
const DefaultNamespace = "ack-system"

// Manifests renders the gateway as ACK custom resources for clusters running
// the API Gateway controller. The returned objects mirror the CloudFormation
// resources: the REST API (policy inlined as JSON), its deployment and
// stage, and one base-path mapping per domain.
//
// Attached routes have no ACK equivalent; the API Gateway controller does
// not reconcile Resource or Method objects, so routes only appear in the
// CloudFormation rendering.
func (g *Gateway) Manifests(namespace string) ([]any, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	policyJSON, err := json.Marshal(g.policy)
	if err != nil {
		return nil, fmt.Errorf("serializing endpoint policy: %w", err)
	}

	apiName := g.RestApiName()
	deploymentName := apiName + "-deployment"
	stageName := apiName + "-stage"

	restAPI := apigwv1alpha1.RestAPI{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apigwv1alpha1.GroupVersion,
			Kind:       "RestAPI",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      apiName,
			Namespace: namespace,
		},
		Spec: apigwv1alpha1.RestAPISpec{
			Name:   apiName,
			Policy: strPtr(string(policyJSON)),
			EndpointConfiguration: &apigwv1alpha1.EndpointConfiguration{
				Types:          []*string{strPtr("PRIVATE")},
				VPCEndpointIDs: g.vpcEndpointIDs(),
			},
		},
	}
	if len(g.config.BinaryMediaTypes) > 0 {
		types := make([]*string, len(g.config.BinaryMediaTypes))
		for i, mediaType := range g.config.BinaryMediaTypes {
			types[i] = strPtr(mediaType)
		}
		restAPI.Spec.BinaryMediaTypes = types
	}
	if g.config.MinimumCompressionSize != nil {
		size := int64(*g.config.MinimumCompressionSize)
		restAPI.Spec.MinimumCompressionSize = &size
	}

	deployment := apigwv1alpha1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apigwv1alpha1.GroupVersion,
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      deploymentName,
			Namespace: namespace,
		},
		Spec: apigwv1alpha1.DeploymentSpec{
			RestAPIRef: resourceRef(apiName),
		},
	}

	stage := apigwv1alpha1.Stage{
		TypeMeta: metav1.TypeMeta{
			APIVersion: apigwv1alpha1.GroupVersion,
			Kind:       "Stage",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      stageName,
			Namespace: namespace,
		},
		Spec: apigwv1alpha1.StageSpec{
			RestAPIRef:    resourceRef(apiName),
			DeploymentRef: resourceRef(deploymentName),
			StageName:     g.config.Stage,
		},
	}

	manifests := []any{restAPI, deployment, stage}

	for _, domain := range g.config.Domains {
		mapping := apigwv1alpha1.BasePathMapping{
			TypeMeta: metav1.TypeMeta{
				APIVersion: apigwv1alpha1.GroupVersion,
				Kind:       "BasePathMapping",
			},
			ObjectMeta: metav1.ObjectMeta{
				Name:      domain,
				Namespace: namespace,
			},
			Spec: apigwv1alpha1.BasePathMappingSpec{
				DomainName: domain,
				RestAPIRef: resourceRef(apiName),
				Stage:      strPtr(g.config.Stage),
			},
		}
		if g.config.BasePath != "" {
			mapping.Spec.BasePath = strPtr(g.config.BasePath)
		}
		manifests = append(manifests, mapping)
	}

	return manifests, nil
}

// vpcEndpointIDs renders the configured endpoint for the ACK spec. ACK
// specs carry plain strings, so an intrinsic reference falls back to its
// logical name.
func (g *Gateway) vpcEndpointIDs() []*string {
	switch v := g.config.VpcEndpoint.(type) {
	case string:
		return []*string{strPtr(v)}
	case intrinsics.Ref:
		return []*string{strPtr(v.LogicalName)}
	default:
		return []*string{strPtr(fmt.Sprintf("%v", v))}
	}
}

func resourceRef(name string) *apigwv1alpha1.AWSResourceReferenceWrapper {
	return &apigwv1alpha1.AWSResourceReferenceWrapper{
		From: &apigwv1alpha1.AWSResourceReference{Name: strPtr(name)},
	}
}

func strPtr(s string) *string {
	return &s
}
