package privategw

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/lex00/privategw-go/intrinsics"
	"github.com/lex00/privategw-go/resources/apigateway"
)

// genStage generates a realistic stage name.
func genStage() *rapid.Generator[string] {
	return rapid.StringMatching("[a-z][a-z0-9-]{0,19}")
}

// genVpceID generates a vpce id string.
func genVpceID() *rapid.Generator[string] {
	return rapid.StringMatching("vpce-[0-9a-f]{8,17}")
}

// genDomains generates a set of distinct domain names.
func genDomains(maxCount int) *rapid.Generator[[]string] {
	return rapid.Custom[[]string](func(t *rapid.T) []string {
		n := rapid.IntRange(0, maxCount).Draw(t, "numDomains")
		seen := make(map[string]bool, n)
		var domains []string
		for i := 0; len(domains) < n; i++ {
			label := rapid.StringMatching("[a-z][a-z0-9-]{0,10}").Draw(t, fmt.Sprintf("label_%d", i))
			domain := label + ".example.com"
			if seen[domain] {
				continue
			}
			seen[domain] = true
			domains = append(domains, domain)
		}
		return domains
	})
}

// For any configuration with distinct domains, the gateway emits exactly one
// base-path mapping per domain, in the configured order, all pointing at the
// configured stage.
func TestMappingPerDomainProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stage := genStage().Draw(t, "stage")
		domains := genDomains(5).Draw(t, "domains")
		endpoint := genVpceID().Draw(t, "endpoint")

		gw, err := Build(Config{Stage: stage, Domains: domains, VpcEndpoint: endpoint})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		resources := gw.Resources()
		if got, want := len(resources), 3+len(domains); got != want {
			t.Fatalf("resource count: got %d, want %d", got, want)
		}

		for i, domain := range domains {
			named := resources[3+i]
			mapping, ok := named.Resource.(apigateway.BasePathMapping)
			if !ok {
				t.Fatalf("resource %d is %T, want BasePathMapping", 3+i, named.Resource)
			}
			if mapping.DomainName != any(domain) {
				t.Fatalf("mapping %d domain: got %v, want %q", i, mapping.DomainName, domain)
			}
			if mapping.Stage != stage {
				t.Fatalf("mapping %d stage: got %q, want %q", i, mapping.Stage, stage)
			}
		}
	})
}

// For any endpoint id, the policy carries exactly two statements that are
// logical complements: a Deny guarded by StringNotEquals and an Allow guarded
// by StringEquals, over the same aws:SourceVpce value, with identical
// principal, action, and resource.
func TestPolicyComplementProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stage := genStage().Draw(t, "stage")
		endpoint := genVpceID().Draw(t, "endpoint")

		gw, err := Build(Config{Stage: stage, VpcEndpoint: endpoint})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		policy := gw.Policy()
		if len(policy.Statement) != 2 {
			t.Fatalf("statement count: got %d, want 2", len(policy.Statement))
		}

		deny := policy.Statement[0].(intrinsics.PolicyStatement)
		allow := policy.Statement[1].(intrinsics.PolicyStatement)

		if deny.Effect != "Deny" || allow.Effect != "Allow" {
			t.Fatalf("effects: got %q/%q, want Deny/Allow", deny.Effect, allow.Effect)
		}
		if deny.Action != allow.Action || deny.Resource != allow.Resource || deny.Principal != allow.Principal {
			t.Fatalf("statements differ beyond effect and condition")
		}

		denyCond, ok := deny.Condition[intrinsics.StringNotEquals].(intrinsics.Json)
		if !ok {
			t.Fatalf("deny statement is not guarded by StringNotEquals")
		}
		allowCond, ok := allow.Condition[intrinsics.StringEquals].(intrinsics.Json)
		if !ok {
			t.Fatalf("allow statement is not guarded by StringEquals")
		}
		if denyCond[intrinsics.SourceVpce] != any(endpoint) {
			t.Fatalf("deny condition endpoint: got %v, want %q", denyCond[intrinsics.SourceVpce], endpoint)
		}
		if allowCond[intrinsics.SourceVpce] != denyCond[intrinsics.SourceVpce] {
			t.Fatalf("conditions guard different endpoint values")
		}
	})
}

// For any configuration, the stage name passes through verbatim: into the
// stage resource, every mapping, and the REST API name.
func TestStageVerbatimProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stage := genStage().Draw(t, "stage")
		domains := genDomains(3).Draw(t, "domains")
		endpoint := genVpceID().Draw(t, "endpoint")

		gw, err := Build(Config{Stage: stage, Domains: domains, VpcEndpoint: endpoint})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		if gw.StageName() != stage {
			t.Fatalf("StageName: got %q, want %q", gw.StageName(), stage)
		}
		if !strings.HasPrefix(gw.RestApiName(), stage) {
			t.Fatalf("RestApiName %q does not carry the stage", gw.RestApiName())
		}

		for _, named := range gw.Resources() {
			switch res := named.Resource.(type) {
			case apigateway.Stage:
				if res.StageName != stage {
					t.Fatalf("stage resource: got %q, want %q", res.StageName, stage)
				}
			case apigateway.BasePathMapping:
				if res.Stage != stage {
					t.Fatalf("mapping stage: got %q, want %q", res.Stage, stage)
				}
			}
		}
	})
}

// Optional fields pass through exactly as configured, and stay absent when
// not configured.
func TestOptionalPassthroughProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stage := genStage().Draw(t, "stage")
		endpoint := genVpceID().Draw(t, "endpoint")

		cfg := Config{Stage: stage, VpcEndpoint: endpoint}

		hasTypes := rapid.Bool().Draw(t, "hasTypes")
		if hasTypes {
			n := rapid.IntRange(1, 4).Draw(t, "numTypes")
			for i := 0; i < n; i++ {
				sub := rapid.StringMatching("[a-z][a-z0-9.-]{0,10}").Draw(t, fmt.Sprintf("subtype_%d", i))
				cfg.BinaryMediaTypes = append(cfg.BinaryMediaTypes, "application/"+sub)
			}
		}

		hasSize := rapid.Bool().Draw(t, "hasSize")
		if hasSize {
			size := rapid.IntRange(0, 10485760).Draw(t, "size")
			cfg.MinimumCompressionSize = &size
		}

		gw, err := Build(cfg)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		api := gw.Resources()[0].Resource.(apigateway.RestApi)

		if hasTypes {
			if len(api.BinaryMediaTypes) != len(cfg.BinaryMediaTypes) {
				t.Fatalf("binary media types: got %d entries, want %d", len(api.BinaryMediaTypes), len(cfg.BinaryMediaTypes))
			}
			for i, mediaType := range cfg.BinaryMediaTypes {
				if api.BinaryMediaTypes[i] != mediaType {
					t.Fatalf("binary media type %d: got %q, want %q", i, api.BinaryMediaTypes[i], mediaType)
				}
			}
		} else if api.BinaryMediaTypes != nil {
			t.Fatalf("binary media types should be absent, got %v", api.BinaryMediaTypes)
		}

		if hasSize {
			if api.MinimumCompressionSize == nil {
				t.Fatalf("compression size should be set")
			}
			if *api.MinimumCompressionSize != *cfg.MinimumCompressionSize {
				t.Fatalf("compression size: got %d, want %d", *api.MinimumCompressionSize, *cfg.MinimumCompressionSize)
			}
		} else if api.MinimumCompressionSize != nil {
			t.Fatalf("compression size should be absent, got %d", *api.MinimumCompressionSize)
		}
	})
}
