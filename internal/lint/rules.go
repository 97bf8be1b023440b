// Package lint checks stack files for problems the provider would only
// surface at deployment time. Each rule provides clear messages and
// suggestions.
//
// Rules:
//
//	PGW001: Stage name contains characters API Gateway rejects
//	PGW002: VPC endpoint id does not match the vpce- shape
//	PGW003: Duplicate domain entries collide on one mapping
//	PGW004: Minimum compression size outside the accepted range
//	PGW005: Binary media type is not type/subtype
//	PGW006: Base path contains characters the mapping rejects
package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lex00/privategw-go/internal/config"
)

// AllRules returns every rule in id order.
func AllRules() []Rule {
	return []Rule{
		InvalidStageName{},
		InvalidEndpointID{},
		DuplicateDomain{},
		CompressionSizeOutOfRange{},
		InvalidBinaryMediaType{},
		InvalidBasePath{},
	}
}

var (
	stagePattern    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	endpointPattern = regexp.MustCompile(`^vpce-[0-9a-f]{8,17}$`)
	basePathPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]*$`)
)

// maxCompressionSize is 10 MB, the largest payload API Gateway will compress.
const maxCompressionSize = 10485760

// InvalidStageName detects stage names the provider would reject at
// deployment time.
type InvalidStageName struct{}

func (r InvalidStageName) ID() string { return "PGW001" }
func (r InvalidStageName) Description() string {
	return "Stage name contains characters API Gateway rejects"
}

func (r InvalidStageName) Check(stack *config.Stack) []Issue {
	if stack.Stage == "" || stagePattern.MatchString(stack.Stage) {
		return nil
	}
	return []Issue{{
		Rule:       r.ID(),
		Message:    fmt.Sprintf("stage %q contains characters API Gateway rejects", stack.Stage),
		Suggestion: "use letters, digits, hyphens, and underscores",
		File:       stack.Path,
		Line:       1,
		Severity:   SeverityError,
	}}
}

// InvalidEndpointID detects literal VPC endpoint ids that do not look like
// interface endpoint ids. References resolved elsewhere are out of scope.
type InvalidEndpointID struct{}

func (r InvalidEndpointID) ID() string { return "PGW002" }
func (r InvalidEndpointID) Description() string {
	return "VPC endpoint id does not match the vpce- shape"
}

func (r InvalidEndpointID) Check(stack *config.Stack) []Issue {
	if stack.VpcEndpoint == "" || endpointPattern.MatchString(stack.VpcEndpoint) {
		return nil
	}
	return []Issue{{
		Rule:       r.ID(),
		Message:    fmt.Sprintf("vpc_endpoint %q does not look like a VPC endpoint id", stack.VpcEndpoint),
		Suggestion: "vpce-0f1e2d3c4b5a69788",
		File:       stack.Path,
		Line:       1,
		Severity:   SeverityError,
	}}
}

// DuplicateDomain detects domains listed more than once. Each domain derives
// one mapping logical id, so duplicates collide in the template.
type DuplicateDomain struct{}

func (r DuplicateDomain) ID() string { return "PGW003" }
func (r DuplicateDomain) Description() string {
	return "Duplicate domain entries collide on one mapping"
}

func (r DuplicateDomain) Check(stack *config.Stack) []Issue {
	var issues []Issue
	seen := make(map[string]bool)
	for _, domain := range stack.Domains {
		if seen[domain] {
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Message:    fmt.Sprintf("domain %q is listed more than once; its base-path mappings collide", domain),
				Suggestion: "remove the duplicate entry",
				File:       stack.Path,
				Line:       1,
				Severity:   SeverityWarning,
			})
			continue
		}
		seen[domain] = true
	}
	return issues
}

// CompressionSizeOutOfRange detects compression thresholds outside what the
// provider accepts.
type CompressionSizeOutOfRange struct{}

func (r CompressionSizeOutOfRange) ID() string { return "PGW004" }
func (r CompressionSizeOutOfRange) Description() string {
	return "Minimum compression size outside the accepted range"
}

func (r CompressionSizeOutOfRange) Check(stack *config.Stack) []Issue {
	size := stack.MinimumCompressionSize
	if size == nil || (*size >= 0 && *size <= maxCompressionSize) {
		return nil
	}
	return []Issue{{
		Rule:       r.ID(),
		Message:    fmt.Sprintf("minimum_compression_size %d is outside the accepted range [0, %d]", *size, maxCompressionSize),
		Suggestion: "pick a threshold between 0 and 10485760 bytes",
		File:       stack.Path,
		Line:       1,
		Severity:   SeverityError,
	}}
}

// InvalidBinaryMediaType detects media type entries that are not type/subtype.
type InvalidBinaryMediaType struct{}

func (r InvalidBinaryMediaType) ID() string { return "PGW005" }
func (r InvalidBinaryMediaType) Description() string {
	return "Binary media type is not type/subtype"
}

func (r InvalidBinaryMediaType) Check(stack *config.Stack) []Issue {
	var issues []Issue
	for _, mediaType := range stack.BinaryMediaTypes {
		parts := strings.Split(mediaType, "/")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			continue
		}
		issues = append(issues, Issue{
			Rule:       r.ID(),
			Message:    fmt.Sprintf("binary media type %q is not type/subtype", mediaType),
			Suggestion: "application/octet-stream",
			File:       stack.Path,
			Line:       1,
			Severity:   SeverityWarning,
		})
	}
	return issues
}

// InvalidBasePath detects base paths the mapping would reject. Mappings take
// a single path segment, so separators are flagged too.
type InvalidBasePath struct{}

func (r InvalidBasePath) ID() string { return "PGW006" }
func (r InvalidBasePath) Description() string {
	return "Base path contains characters the mapping rejects"
}

func (r InvalidBasePath) Check(stack *config.Stack) []Issue {
	if basePathPattern.MatchString(stack.BasePath) {
		return nil
	}
	return []Issue{{
		Rule:       r.ID(),
		Message:    fmt.Sprintf("base_path %q contains characters the mapping rejects", stack.BasePath),
		Suggestion: "use a single segment of letters, digits, dots, hyphens, or underscores",
		File:       stack.Path,
		Line:       1,
		Severity:   SeverityError,
	}}
}
