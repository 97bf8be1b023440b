// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like Condition blocks.
//
// Example:
//
//	Condition: Json{
//	    StringEquals: Json{SourceVpce: "vpce-0f1e2d3c4b5a69788"},
//	}
type Json = map[string]any

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
//
// Example:
//
//	Statement: Any(denyStatement, allowStatement),
func Any(items ...any) []any {
	return items
}

// PolicyDocument represents an IAM policy document.
//
// Example:
//
//	policy := PolicyDocument{
//	    Version:   "2012-10-17",
//	    Statement: Any(deny, allow),
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument() PolicyDocument {
	return PolicyDocument{Version: "2012-10-17"}
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	deny := PolicyStatement{
//	    Effect:    "Deny",
//	    Principal: AllPrincipal,
//	    Action:    "execute-api:Invoke",
//	    Resource:  "execute-api:/*/*/*",
//	    Condition: Json{StringNotEquals: Json{SourceVpce: endpoint}},
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// AllPrincipal represents the wildcard principal "*".
const AllPrincipal = "*"

// SourceVpce is the condition key carrying the caller's VPC endpoint id.
// A resource policy conditioned on it restricts access to traffic entering
// through that interface endpoint.
const SourceVpce = "aws:SourceVpce"

// --- IAM Condition Operator Constants ---
// Use these as keys in Condition maps for type safety and typo prevention.
//
// Example:
//
//	Condition: Json{
//	    StringNotEquals: Json{SourceVpce: "vpce-0f1e2d3c4b5a69788"},
//	}

const (
	// String conditions
	StringEquals              = "StringEquals"
	StringNotEquals           = "StringNotEquals"
	StringEqualsIgnoreCase    = "StringEqualsIgnoreCase"
	StringNotEqualsIgnoreCase = "StringNotEqualsIgnoreCase"
	StringLike                = "StringLike"
	StringNotLike             = "StringNotLike"

	// Boolean condition
	Bool = "Bool"

	// IP address conditions
	IpAddress    = "IpAddress"
	NotIpAddress = "NotIpAddress"

	// Null condition
	Null = "Null"
)
