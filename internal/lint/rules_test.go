package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/privategw-go/internal/config"
)

func cleanStack() *config.Stack {
	return &config.Stack{
		Stage:       "prod",
		Domains:     []string{"d1.example.test", "d2.example.test"},
		VpcEndpoint: "vpce-0f1e2d3c4b5a69788",
		BasePath:    "internal",
		Path:        "stack.yaml",
	}
}

func TestLintStack_CleanStack(t *testing.T) {
	result := LintStack(cleanStack(), Options{})

	assert.True(t, result.Success)
	assert.Len(t, result.Issues, 0)
}

func TestInvalidStageName(t *testing.T) {
	tests := []struct {
		stage string
		want  int
	}{
		{"prod", 0},
		{"prod-v2", 0},
		{"prod_2024", 0},
		{"", 0}, // missing stage is a validation error, not a lint finding
		{"prod stage", 1},
		{"prod/v2", 1},
		{"pród", 1},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			stack := cleanStack()
			stack.Stage = tt.stage

			issues := InvalidStageName{}.Check(stack)
			assert.Len(t, issues, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "PGW001", issues[0].Rule)
				assert.Equal(t, SeverityError, issues[0].Severity)
				assert.Equal(t, "stack.yaml", issues[0].File)
			}
		})
	}
}

func TestInvalidEndpointID(t *testing.T) {
	tests := []struct {
		endpoint string
		want     int
	}{
		{"vpce-0f1e2d3c4b5a69788", 0},
		{"vpce-12345678", 0},
		{"", 0}, // missing endpoint is a validation error, not a lint finding
		{"vpc-0f1e2d3c4b5a69788", 1},
		{"vpce-XYZ", 1},
		{"my-endpoint", 1},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			stack := cleanStack()
			stack.VpcEndpoint = tt.endpoint

			issues := InvalidEndpointID{}.Check(stack)
			assert.Len(t, issues, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "PGW002", issues[0].Rule)
				assert.Equal(t, SeverityError, issues[0].Severity)
			}
		})
	}
}

func TestDuplicateDomain(t *testing.T) {
	stack := cleanStack()
	stack.Domains = []string{"d1.example.test", "d2.example.test", "d1.example.test", "d1.example.test"}

	issues := DuplicateDomain{}.Check(stack)
	require.Len(t, issues, 2, "one finding per repeated entry")

	assert.Equal(t, "PGW003", issues[0].Rule)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "d1.example.test")
}

func TestDuplicateDomain_Unique(t *testing.T) {
	assert.Empty(t, DuplicateDomain{}.Check(cleanStack()))
}

func TestCompressionSizeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		size *int
		want int
	}{
		{"absent", nil, 0},
		{"zero", intPtr(0), 0},
		{"max", intPtr(10485760), 0},
		{"typical", intPtr(1024), 0},
		{"negative", intPtr(-1), 1},
		{"over max", intPtr(10485761), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := cleanStack()
			stack.MinimumCompressionSize = tt.size

			issues := CompressionSizeOutOfRange{}.Check(stack)
			assert.Len(t, issues, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "PGW004", issues[0].Rule)
				assert.Equal(t, SeverityError, issues[0].Severity)
			}
		})
	}
}

func TestInvalidBinaryMediaType(t *testing.T) {
	stack := cleanStack()
	stack.BinaryMediaTypes = []string{
		"application/octet-stream",
		"image/png",
		"*/*",
		"octet-stream",
		"application/",
		"a/b/c",
	}

	issues := InvalidBinaryMediaType{}.Check(stack)
	require.Len(t, issues, 3)

	for _, issue := range issues {
		assert.Equal(t, "PGW005", issue.Rule)
		assert.Equal(t, SeverityWarning, issue.Severity)
	}
	assert.Contains(t, issues[0].Message, "octet-stream")
}

func TestInvalidBasePath(t *testing.T) {
	tests := []struct {
		basePath string
		want     int
	}{
		{"", 0},
		{"internal", 0},
		{"v2", 0},
		{"api-v2.beta", 0},
		{"internal/api", 1},
		{"internal api", 1},
	}

	for _, tt := range tests {
		t.Run(tt.basePath, func(t *testing.T) {
			stack := cleanStack()
			stack.BasePath = tt.basePath

			issues := InvalidBasePath{}.Check(stack)
			assert.Len(t, issues, tt.want)
			if tt.want > 0 {
				assert.Equal(t, "PGW006", issues[0].Rule)
				assert.Equal(t, SeverityError, issues[0].Severity)
			}
		})
	}
}

func TestLintStack_CollectsAcrossRules(t *testing.T) {
	stack := cleanStack()
	stack.VpcEndpoint = "not-an-endpoint"
	stack.Domains = []string{"d1.example.test", "d1.example.test"}

	result := LintStack(stack, Options{})
	assert.False(t, result.Success)
	require.Len(t, result.Issues, 2)

	rules := []string{result.Issues[0].Rule, result.Issues[1].Rule}
	assert.Contains(t, rules, "PGW002")
	assert.Contains(t, rules, "PGW003")
}

func TestGetRules_AllRules(t *testing.T) {
	rules := getRules(Options{})
	assert.Len(t, rules, 6)
}

func TestGetRules_FilteredRules(t *testing.T) {
	rules := getRules(Options{
		EnabledRules: []string{"PGW001", "PGW003"},
	})
	assert.Len(t, rules, 2)

	ruleIDs := []string{}
	for _, r := range rules {
		ruleIDs = append(ruleIDs, r.ID())
	}
	assert.Contains(t, ruleIDs, "PGW001")
	assert.Contains(t, ruleIDs, "PGW003")
}

func TestGetRules_FilterLimitsFindings(t *testing.T) {
	stack := cleanStack()
	stack.VpcEndpoint = "not-an-endpoint"
	stack.Domains = []string{"d1.example.test", "d1.example.test"}

	result := LintStack(stack, Options{EnabledRules: []string{"PGW003"}})
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "PGW003", result.Issues[0].Rule)
}

func intPtr(i int) *int { return &i }
