// Package config loads stack files.
//
// A stack file is a small YAML document describing one private gateway:
//
//	stage: prod
//	vpc_endpoint: vpce-0f1e2d3c4b5a69788
//	domains:
//	  - internal-api.example.com
//
// Values can be overridden through PRIVATEGW_-prefixed environment
// variables, e.g. PRIVATEGW_STAGE=staging.
package config

import (
	"fmt"

	privategw "github.com/lex00/privategw-go"
)

// Stack is one private gateway configuration as read from a stack file.
// The yaml tags mirror the mapstructure tags so `privategw import` can
// write stack files back out with the same field names Load reads.
type Stack struct {
	Stage                  string        `mapstructure:"stage" yaml:"stage" validate:"required"`
	Domains                []string      `mapstructure:"domains" yaml:"domains,omitempty"`
	VpcEndpoint            string        `mapstructure:"vpc_endpoint" yaml:"vpc_endpoint" validate:"required"`
	BasePath               string        `mapstructure:"base_path" yaml:"base_path,omitempty"`
	BinaryMediaTypes       []string      `mapstructure:"binary_media_types" yaml:"binary_media_types,omitempty"`
	MinimumCompressionSize *int          `mapstructure:"minimum_compression_size" yaml:"minimum_compression_size,omitempty" validate:"omitempty,gte=0"`
	Description            string        `mapstructure:"description" yaml:"description,omitempty"`
	Routes                 []RouteConfig `mapstructure:"routes" yaml:"routes,omitempty" validate:"dive"`

	// Path of the file the stack was loaded from, set by Load.
	Path string `mapstructure:"-" yaml:"-"`
}

// RouteConfig describes a route attached to the gateway after it is built.
type RouteConfig struct {
	Name          string `mapstructure:"name" yaml:"name" validate:"required"`
	Path          string `mapstructure:"path" yaml:"path" validate:"required"`
	Method        string `mapstructure:"method" yaml:"method,omitempty"`
	Authorization string `mapstructure:"authorization" yaml:"authorization,omitempty"`
}

// Config maps the stack file onto the construct configuration.
func (s *Stack) Config() privategw.Config {
	return privategw.Config{
		Stage:                  s.Stage,
		Domains:                s.Domains,
		VpcEndpoint:            s.VpcEndpoint,
		BasePath:               s.BasePath,
		BinaryMediaTypes:       s.BinaryMediaTypes,
		MinimumCompressionSize: s.MinimumCompressionSize,
	}
}

// Gateway builds the gateway the stack file describes and attaches its routes.
func (s *Stack) Gateway() (*privategw.Gateway, error) {
	gw, err := privategw.Build(s.Config())
	if err != nil {
		return nil, err
	}
	for _, r := range s.Routes {
		route := privategw.Route{
			Name:              r.Name,
			Path:              r.Path,
			Method:            r.Method,
			AuthorizationType: r.Authorization,
		}
		if err := gw.AttachRoute(route); err != nil {
			return nil, fmt.Errorf("attaching route %s: %w", r.Name, err)
		}
	}
	return gw, nil
}
