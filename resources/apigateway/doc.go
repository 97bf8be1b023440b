// Package apigateway contains the API Gateway resource types the private
// gateway construct emits.
//
// The set is curated for private REST APIs: the API itself, its deployment
// and stage, custom domains with their base-path mappings, and the
// resource/method pair used when attaching routes.
//
// Example usage:
//
//	api := apigateway.RestApi{
//	    Name:   "prod-private-api",
//	    Policy: policy,
//	    EndpointConfiguration: &apigateway.RestApi_EndpointConfiguration{
//	        Types:          []string{"PRIVATE"},
//	        VpcEndpointIds: []any{"vpce-0f1e2d3c4b5a69788"},
//	    },
//	}
package apigateway
