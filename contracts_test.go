package privategw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrRef_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		ref      AttrRef
		expected string
	}{
		{
			name:     "root resource id",
			ref:      AttrRef{Resource: "PrivateRestApi", Attribute: "RootResourceId"},
			expected: `{"Fn::GetAtt":["PrivateRestApi","RootResourceId"]}`,
		},
		{
			name:     "rest api id",
			ref:      AttrRef{Resource: "PrivateRestApi", Attribute: "RestApiId"},
			expected: `{"Fn::GetAtt":["PrivateRestApi","RestApiId"]}`,
		},
		{
			name:     "domain name alias target",
			ref:      AttrRef{Resource: "ApiDomain", Attribute: "RegionalDomainName"},
			expected: `{"Fn::GetAtt":["ApiDomain","RegionalDomainName"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ref)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestAttrRef_IsZero(t *testing.T) {
	tests := []struct {
		name     string
		ref      AttrRef
		expected bool
	}{
		{
			name:     "empty",
			ref:      AttrRef{},
			expected: true,
		},
		{
			name:     "with resource",
			ref:      AttrRef{Resource: "PrivateRestApi"},
			expected: false,
		},
		{
			name:     "with attribute",
			ref:      AttrRef{Attribute: "RootResourceId"},
			expected: false,
		},
		{
			name:     "fully populated",
			ref:      AttrRef{Resource: "PrivateRestApi", Attribute: "RootResourceId"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ref.IsZero())
		})
	}
}

func TestTemplate_JSON(t *testing.T) {
	template := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              "Test template",
		Resources: map[string]ResourceDef{
			"PrivateRestApi": {
				Type: "AWS::ApiGateway::RestApi",
				Properties: map[string]any{
					"Name": "prod-private-api",
				},
			},
		},
		Outputs: map[string]Output{
			"RestApiId": {
				Description: "ID of the private REST API",
				Value:       map[string]string{"Ref": "PrivateRestApi"},
			},
		},
	}

	data, err := json.Marshal(template)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])
	assert.Equal(t, "Test template", parsed["Description"])

	resources := parsed["Resources"].(map[string]any)
	api := resources["PrivateRestApi"].(map[string]any)
	assert.Equal(t, "AWS::ApiGateway::RestApi", api["Type"])

	outputs := parsed["Outputs"].(map[string]any)
	apiID := outputs["RestApiId"].(map[string]any)
	assert.Equal(t, "ID of the private REST API", apiID["Description"])
}

func TestResourceDef_DependsOn(t *testing.T) {
	resource := ResourceDef{
		Type: "AWS::ApiGateway::Deployment",
		Properties: map[string]any{
			"RestApiId": map[string]string{"Ref": "PrivateRestApi"},
		},
		DependsOn: []string{"HelloMethod", "StatusMethod"},
	}

	data, err := json.Marshal(resource)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "AWS::ApiGateway::Deployment", parsed["Type"])
	dependsOn := parsed["DependsOn"].([]any)
	assert.Len(t, dependsOn, 2)
	assert.Equal(t, "HelloMethod", dependsOn[0])
	assert.Equal(t, "StatusMethod", dependsOn[1])
}

func TestBuildResult_Success(t *testing.T) {
	result := BuildResult{
		Success: true,
		Template: Template{
			AWSTemplateFormatVersion: "2010-09-09",
			Resources: map[string]ResourceDef{
				"PrivateRestApi": {
					Type: "AWS::ApiGateway::RestApi",
				},
			},
		},
		Resources: []string{"PrivateRestApi"},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.True(t, parsed["success"].(bool))
	resources := parsed["resources"].([]any)
	assert.Equal(t, "PrivateRestApi", resources[0])
}

func TestBuildResult_Error(t *testing.T) {
	result := BuildResult{
		Success: false,
		Errors:  []string{"stage is required", "vpc endpoint is required"},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.False(t, parsed["success"].(bool))
	errors := parsed["errors"].([]any)
	assert.Len(t, errors, 2)
}

func TestLintResult(t *testing.T) {
	result := LintResult{
		Success: false,
		Issues: []LintIssue{
			{
				File:     "stack.yaml",
				Line:     4,
				Column:   10,
				Severity: "warning",
				Message:  "domain internal-api.example.com is mapped twice",
				Rule:     "PGW003",
			},
			{
				File:     "stack.yaml",
				Line:     2,
				Column:   5,
				Severity: "error",
				Message:  `vpc endpoint "vpce" is not a vpce id`,
				Rule:     "PGW002",
			},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.False(t, parsed["success"].(bool))
	issues := parsed["issues"].([]any)
	assert.Len(t, issues, 2)

	issue1 := issues[0].(map[string]any)
	assert.Equal(t, "stack.yaml", issue1["file"])
	assert.Equal(t, "warning", issue1["severity"])
	assert.Equal(t, "PGW003", issue1["rule"])

	issue2 := issues[1].(map[string]any)
	assert.Equal(t, "error", issue2["severity"])
}

func TestOutput_WithExport(t *testing.T) {
	output := Output{
		Description: "REST API id for cross-stack reference",
		Value:       map[string]string{"Ref": "PrivateRestApi"},
		Export: &struct {
			Name string `json:"Name" yaml:"Name"`
		}{
			Name: "MyStack-RestApiId",
		},
	}

	data, err := json.Marshal(output)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	export := parsed["Export"].(map[string]any)
	assert.Equal(t, "MyStack-RestApiId", export["Name"])
}
