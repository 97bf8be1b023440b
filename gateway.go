package privategw

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lex00/privategw-go/internal/serialize"
	"github.com/lex00/privategw-go/intrinsics"
	"github.com/lex00/privategw-go/resources/apigateway"
)

// Logical IDs of the resources every gateway emits. Base-path mappings are
// named per domain, see MappingLogicalID.
const (
	RestApiLogicalID    = "PrivateRestApi"
	DeploymentLogicalID = "ApiDeployment"
	StageLogicalID      = "ApiStage"
)

// Config describes one private API Gateway.
type Config struct {
	// Stage is the deployment stage name (e.g., "prod"). Required.
	Stage string

	// Domains are the custom domains to map to the stage, in order. One
	// base-path mapping is emitted per entry. May be empty.
	Domains []string

	// VpcEndpoint identifies the VPC interface endpoint the API accepts
	// traffic from. Either a vpce id string or a reference to an
	// ec2.VPCEndpoint resource in the same template. Required.
	VpcEndpoint any

	// BasePath is the path prefix each domain maps under. Empty maps the
	// domain root.
	BasePath string

	// BinaryMediaTypes lists media types the API treats as binary payloads.
	BinaryMediaTypes []string

	// MinimumCompressionSize enables payload compression at or above the
	// given body size in bytes. Nil leaves compression disabled.
	MinimumCompressionSize *int
}

// Gateway is a built private API Gateway description.
//
// The base resources and the endpoint policy are fixed at Build time.
// AttachRoute is the only way to extend a gateway; everything else reads.
type Gateway struct {
	config Config
	policy intrinsics.PolicyDocument
	routes []route
}

// route is one attached path with its method.
type route struct {
	logicalName string // sanitized fragment for logical IDs
	path        string
	httpMethod  string
	auth        string
	integration *apigateway.Method_Integration
}

// Route describes a path attached to the gateway's root resource.
type Route struct {
	// Name names the route's resources in the template. Required.
	Name string

	// Path is the path segment under the API root (e.g., "orders" or
	// "{proxy+}"). Required.
	Path string

	// Method is the HTTP verb. Defaults to "ANY".
	Method string

	// AuthorizationType is the method authorization. Defaults to "NONE".
	AuthorizationType string

	// Integration is the backend integration. Defaults to a MOCK
	// integration answering with status 200.
	Integration *apigateway.Method_Integration
}

// Build constructs a gateway description from the given configuration.
//
// Build aborts when Stage or VpcEndpoint is missing. Everything else passes
// through as given; `privategw lint` reports suspicious values without
// blocking construction.
func Build(cfg Config) (*Gateway, error) {
	if cfg.Stage == "" {
		return nil, errors.New("stage is required")
	}
	if cfg.VpcEndpoint == nil {
		return nil, errors.New("vpc endpoint is required")
	}
	if s, ok := cfg.VpcEndpoint.(string); ok && s == "" {
		return nil, errors.New("vpc endpoint is required")
	}

	// Detach caller-owned slices and pointers
	cfg.Domains = append([]string(nil), cfg.Domains...)
	if cfg.BinaryMediaTypes != nil {
		cfg.BinaryMediaTypes = append([]string(nil), cfg.BinaryMediaTypes...)
	}
	if cfg.MinimumCompressionSize != nil {
		size := *cfg.MinimumCompressionSize
		cfg.MinimumCompressionSize = &size
	}

	return &Gateway{
		config: cfg,
		policy: endpointPolicy(cfg.VpcEndpoint),
	}, nil
}

// endpointPolicy builds the two-statement resource policy that pins the API
// to one VPC endpoint. The statements are logical complements over
// aws:SourceVpce: traffic not entering through the endpoint is denied,
// traffic entering through it is allowed. Both statements are required; the
// deny closes the door the allow alone would leave open to cross-account
// execute-api sharing.
func endpointPolicy(endpoint any) intrinsics.PolicyDocument {
	deny := intrinsics.PolicyStatement{
		Effect:    "Deny",
		Principal: intrinsics.AllPrincipal,
		Action:    "execute-api:Invoke",
		Resource:  "execute-api:/*/*/*",
		Condition: intrinsics.Json{
			intrinsics.StringNotEquals: intrinsics.Json{intrinsics.SourceVpce: endpoint},
		},
	}
	allow := intrinsics.PolicyStatement{
		Effect:    "Allow",
		Principal: intrinsics.AllPrincipal,
		Action:    "execute-api:Invoke",
		Resource:  "execute-api:/*/*/*",
		Condition: intrinsics.Json{
			intrinsics.StringEquals: intrinsics.Json{intrinsics.SourceVpce: endpoint},
		},
	}

	doc := intrinsics.NewPolicyDocument()
	doc.Statement = intrinsics.Any(deny, allow)
	return doc
}

// AttachRoute adds a path with one method under the API's root resource.
// The deployment gains a DependsOn entry for the new method so
// CloudFormation creates methods before snapshotting them.
func (g *Gateway) AttachRoute(r Route) error {
	if r.Name == "" {
		return errors.New("route name is required")
	}
	logicalName := serialize.LogicalID(r.Name)
	if logicalName == "" {
		return fmt.Errorf("route name %q has no usable characters", r.Name)
	}
	for _, existing := range g.routes {
		if existing.logicalName == logicalName {
			return fmt.Errorf("duplicate route name: %s", r.Name)
		}
	}
	if r.Path == "" {
		return errors.New("route path is required")
	}
	if strings.Contains(r.Path, "/") {
		return fmt.Errorf("route path %q must be a single segment", r.Path)
	}

	httpMethod := r.Method
	if httpMethod == "" {
		httpMethod = "ANY"
	}
	auth := r.AuthorizationType
	if auth == "" {
		auth = "NONE"
	}
	integration := r.Integration
	if integration == nil {
		integration = &apigateway.Method_Integration{
			Type_: "MOCK",
			RequestTemplates: map[string]any{
				"application/json": `{"statusCode": 200}`,
			},
		}
	}

	g.routes = append(g.routes, route{
		logicalName: logicalName,
		path:        r.Path,
		httpMethod:  httpMethod,
		auth:        auth,
		integration: integration,
	})
	return nil
}

// Resources returns the gateway's resources in emission order: the REST API,
// its deployment and stage, one base-path mapping per domain in Domains
// order, then the attached routes in attach order.
func (g *Gateway) Resources() []NamedResource {
	resources := []NamedResource{
		{
			Name: RestApiLogicalID,
			Resource: apigateway.RestApi{
				Name:   g.RestApiName(),
				Policy: g.policy,
				EndpointConfiguration: &apigateway.RestApi_EndpointConfiguration{
					Types:          []string{"PRIVATE"},
					VpcEndpointIds: []any{g.config.VpcEndpoint},
				},
				BinaryMediaTypes:       g.config.BinaryMediaTypes,
				MinimumCompressionSize: g.config.MinimumCompressionSize,
			},
		},
		{
			Name: DeploymentLogicalID,
			Resource: apigateway.Deployment{
				RestApiId: intrinsics.Ref{LogicalName: RestApiLogicalID},
			},
			DependsOn: g.methodLogicalIDs(),
		},
		{
			Name: StageLogicalID,
			Resource: apigateway.Stage{
				RestApiId:    intrinsics.Ref{LogicalName: RestApiLogicalID},
				DeploymentId: intrinsics.Ref{LogicalName: DeploymentLogicalID},
				StageName:    g.config.Stage,
			},
		},
	}

	for _, domain := range g.config.Domains {
		resources = append(resources, NamedResource{
			Name: MappingLogicalID(domain),
			Resource: apigateway.BasePathMapping{
				DomainName: domain,
				RestApiId:  intrinsics.Ref{LogicalName: RestApiLogicalID},
				Stage:      g.config.Stage,
				BasePath:   g.config.BasePath,
			},
			// Map domains only once the stage they point at exists
			DependsOn: []string{StageLogicalID},
		})
	}

	for _, rt := range g.routes {
		resourceID := rt.logicalName + "Resource"
		resources = append(resources,
			NamedResource{
				Name: resourceID,
				Resource: apigateway.Resource{
					RestApiId: intrinsics.Ref{LogicalName: RestApiLogicalID},
					ParentId:  g.RootResourceAttr(),
					PathPart:  rt.path,
				},
			},
			NamedResource{
				Name: rt.logicalName + "Method",
				Resource: apigateway.Method{
					RestApiId:         intrinsics.Ref{LogicalName: RestApiLogicalID},
					ResourceId:        intrinsics.Ref{LogicalName: resourceID},
					HttpMethod:        rt.httpMethod,
					AuthorizationType: rt.auth,
					Integration:       rt.integration,
				},
			},
		)
	}

	return resources
}

// methodLogicalIDs lists the logical IDs of all attached route methods.
func (g *Gateway) methodLogicalIDs() []string {
	if len(g.routes) == 0 {
		return nil
	}
	ids := make([]string, len(g.routes))
	for i, rt := range g.routes {
		ids[i] = rt.logicalName + "Method"
	}
	return ids
}

// Policy returns a copy of the API's endpoint resource policy.
func (g *Gateway) Policy() intrinsics.PolicyDocument {
	doc := g.policy
	doc.Statement = append([]any(nil), g.policy.Statement...)
	return doc
}

// StageName returns the configured stage name.
func (g *Gateway) StageName() string {
	return g.config.Stage
}

// Domains returns the configured custom domains in mapping order.
func (g *Gateway) Domains() []string {
	return append([]string(nil), g.config.Domains...)
}

// RestApiName returns the name the emitted REST API carries.
func (g *Gateway) RestApiName() string {
	return g.config.Stage + "-private-api"
}

// RestApiRef returns a Ref to the gateway's REST API for wiring further
// resources in the same template.
func (g *Gateway) RestApiRef() intrinsics.Ref {
	return intrinsics.Ref{LogicalName: RestApiLogicalID}
}

// RootResourceAttr returns a GetAtt reference to the REST API's root
// resource id, the parent for attached routes.
func (g *Gateway) RootResourceAttr() AttrRef {
	return AttrRef{Resource: RestApiLogicalID, Attribute: "RootResourceId"}
}

// Outputs returns the template outputs the gateway exposes.
func (g *Gateway) Outputs() map[string]Output {
	return map[string]Output{
		"RestApiId": {
			Description: "ID of the private REST API",
			Value:       intrinsics.Ref{LogicalName: RestApiLogicalID},
		},
		"StageName": {
			Description: "Name of the deployed stage",
			Value:       g.config.Stage,
		},
	}
}

// MappingLogicalID returns the logical ID of the base-path mapping emitted
// for the given domain.
func MappingLogicalID(domain string) string {
	return "BasePathMapping" + serialize.LogicalID(domain)
}

// StackDescription returns the description a template built for the given
// stage carries unless the stack file sets its own.
func StackDescription(stage string) string {
	return "Private API Gateway stack for stage " + stage
}
