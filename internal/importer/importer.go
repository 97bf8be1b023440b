// Package importer recovers stack files from CloudFormation templates.
//
// Extract reads a template, finds the private REST API and the resources
// hanging off it, and reconstructs the stack file that would build an
// equivalent gateway. Anything the stack format cannot express is reported
// as a warning rather than silently dropped.
package importer

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lex00/cloudformation-schema-go/template"

	privategw "github.com/lex00/privategw-go"
	"github.com/lex00/privategw-go/internal/config"
)

// CloudFormation resource types the stack file can express.
const (
	restApiType     = "AWS::ApiGateway::RestApi"
	deploymentType  = "AWS::ApiGateway::Deployment"
	stageType       = "AWS::ApiGateway::Stage"
	mappingType     = "AWS::ApiGateway::BasePathMapping"
	apiResourceType = "AWS::ApiGateway::Resource"
	methodType      = "AWS::ApiGateway::Method"
)

// Result is an extracted stack configuration together with the warnings
// produced while recovering it.
type Result struct {
	Stack    *config.Stack
	Warnings []string
}

// Extract recovers a stack configuration from a CloudFormation template
// file. Supports both YAML and JSON formats.
func Extract(path string) (*Result, error) {
	tmpl, err := template.ParseTemplate(path)
	if err != nil {
		return nil, err
	}
	return extract(tmpl)
}

// ExtractContent recovers a stack configuration from template content.
func ExtractContent(content []byte, sourceName string) (*Result, error) {
	tmpl, err := template.ParseTemplateContent(content, sourceName)
	if err != nil {
		return nil, err
	}
	return extract(tmpl)
}

// WriteStack renders a stack as stack-file YAML.
func WriteStack(stack *config.Stack) ([]byte, error) {
	return yaml.Marshal(stack)
}

func extract(tmpl *template.Template) (*Result, error) {
	e := &extractor{
		tmpl:    tmpl,
		stack:   &config.Stack{},
		claimed: make(map[string]bool),
	}

	apiID, err := e.findRestApi()
	if err != nil {
		return nil, err
	}
	e.readRestApi(apiID)
	e.readStage(apiID)
	e.readMappings(apiID)
	e.readRoutes(apiID)
	e.claimDeployments(apiID)
	e.readDescription()
	e.reportLeftovers()

	return &Result{Stack: e.stack, Warnings: e.warnings}, nil
}

// extractor walks one parsed template, accumulating the stack and the
// warnings. claimed tracks the logical IDs recognized as gateway parts so
// everything else can be reported at the end.
type extractor struct {
	tmpl     *template.Template
	stack    *config.Stack
	warnings []string
	claimed  map[string]bool
}

func (e *extractor) warnf(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}

func (e *extractor) source() string {
	if e.tmpl.SourceFile != "" {
		return e.tmpl.SourceFile
	}
	return "template"
}

// findRestApi locates the template's REST API. A stack file describes
// exactly one gateway, so zero or several REST APIs cannot be imported.
func (e *extractor) findRestApi() (string, error) {
	var apis []string
	for logicalID, res := range e.tmpl.Resources {
		if res.ResourceType == restApiType {
			apis = append(apis, logicalID)
		}
	}
	sort.Strings(apis)

	switch len(apis) {
	case 0:
		return "", fmt.Errorf("%s has no AWS::ApiGateway::RestApi resource", e.source())
	case 1:
		e.claimed[apis[0]] = true
		return apis[0], nil
	default:
		return "", fmt.Errorf("%s has %d REST APIs (%s); import one gateway per template",
			e.source(), len(apis), strings.Join(apis, ", "))
	}
}

// readRestApi recovers the REST API properties the stack file carries.
// Name and Policy are regenerated by the next build and stay behind.
func (e *extractor) readRestApi(apiID string) {
	api := e.tmpl.Resources[apiID]

	if v := propValue(api, "BinaryMediaTypes"); v != nil {
		types, clean := stringsOf(v)
		if !clean {
			e.warnf("%s: BinaryMediaTypes has entries that are not strings; kept the rest", apiID)
		}
		e.stack.BinaryMediaTypes = types
	}

	if v := propValue(api, "MinimumCompressionSize"); v != nil {
		if size, ok := intOf(v); ok {
			e.stack.MinimumCompressionSize = &size
		} else {
			e.warnf("%s: MinimumCompressionSize %s; not imported", apiID, describe(v))
		}
	}

	e.readEndpointConfiguration(apiID, propValue(api, "EndpointConfiguration"))
}

// readEndpointConfiguration recovers vpc_endpoint. An endpoint given as a
// reference to another resource is reported, not guessed; the stack file
// needs a concrete vpce id.
func (e *extractor) readEndpointConfiguration(apiID string, v any) {
	if v == nil {
		e.warnf("%s has no EndpointConfiguration; set vpc_endpoint by hand", apiID)
		return
	}
	cfg, ok := v.(map[string]any)
	if !ok {
		e.warnf("%s: EndpointConfiguration %s; set vpc_endpoint by hand", apiID, describe(v))
		return
	}

	if types, _ := stringsOf(cfg["Types"]); len(types) > 0 && types[0] != "PRIVATE" {
		e.warnf("%s endpoint type is %s; the rebuilt gateway is PRIVATE", apiID, types[0])
	}

	ids, ok := cfg["VpcEndpointIds"].([]any)
	if !ok || len(ids) == 0 {
		e.warnf("%s has no VpcEndpointIds; set vpc_endpoint by hand", apiID)
		return
	}
	if len(ids) > 1 {
		e.warnf("%s lists %d VPC endpoints; keeping the first", apiID, len(ids))
	}
	if id, ok := ids[0].(string); ok {
		e.stack.VpcEndpoint = id
		return
	}
	e.warnf("%s: VpcEndpointIds[0] %s; set vpc_endpoint by hand", apiID, describe(ids[0]))
}

// readStage recovers the stage name from the stage pointing at the API.
func (e *extractor) readStage(apiID string) {
	var stages []string
	for logicalID, res := range e.tmpl.Resources {
		if res.ResourceType != stageType {
			continue
		}
		if target, ok := refTarget(propValue(res, "RestApiId")); ok && target == apiID {
			stages = append(stages, logicalID)
		}
	}
	sort.Strings(stages)

	if len(stages) == 0 {
		e.warnf("no stage points at %s; set stage by hand", apiID)
		return
	}
	if len(stages) > 1 {
		e.warnf("%s has %d stages (%s); importing %s",
			apiID, len(stages), strings.Join(stages, ", "), stages[0])
	}
	for _, id := range stages {
		e.claimed[id] = true
	}

	stage := e.tmpl.Resources[stages[0]]
	name, ok := propValue(stage, "StageName").(string)
	if !ok {
		e.warnf("%s: StageName %s; set stage by hand", stages[0], describe(propValue(stage, "StageName")))
		return
	}
	e.stack.Stage = name
}

// readMappings recovers domains and the shared base path. Mappings are
// visited in logical ID order so repeated imports agree on domain order.
func (e *extractor) readMappings(apiID string) {
	var ids []string
	for logicalID, res := range e.tmpl.Resources {
		if res.ResourceType != mappingType {
			continue
		}
		if target, ok := refTarget(propValue(res, "RestApiId")); ok && target == apiID {
			ids = append(ids, logicalID)
		}
	}
	sort.Strings(ids)

	first := true
	for _, id := range ids {
		e.claimed[id] = true
		mapping := e.tmpl.Resources[id]

		domain, ok := propValue(mapping, "DomainName").(string)
		if !ok {
			e.warnf("%s: DomainName %s; domain skipped", id, describe(propValue(mapping, "DomainName")))
			continue
		}
		e.stack.Domains = append(e.stack.Domains, domain)

		basePath, _ := propValue(mapping, "BasePath").(string)
		if first {
			e.stack.BasePath = basePath
			first = false
		} else if basePath != e.stack.BasePath {
			e.warnf("%s maps base path %q; keeping %q", id, basePath, e.stack.BasePath)
		}

		if stage, ok := propValue(mapping, "Stage").(string); ok && e.stack.Stage != "" && stage != e.stack.Stage {
			e.warnf("%s targets stage %q, not %q", id, stage, e.stack.Stage)
		}
	}
}

// readRoutes pairs path resources with their methods. The route name is
// the path part, which is what route logical IDs derive from, so a rebuilt
// template names its resources the same way.
func (e *extractor) readRoutes(apiID string) {
	paths := make(map[string]string)
	var resourceIDs []string
	for logicalID, res := range e.tmpl.Resources {
		if res.ResourceType != apiResourceType {
			continue
		}
		if target, ok := refTarget(propValue(res, "RestApiId")); !ok || target != apiID {
			continue
		}
		e.claimed[logicalID] = true
		resourceIDs = append(resourceIDs, logicalID)
		if part, ok := propValue(res, "PathPart").(string); ok {
			paths[logicalID] = part
		} else {
			e.warnf("%s: PathPart %s; route skipped", logicalID, describe(propValue(res, "PathPart")))
		}
	}

	var methodIDs []string
	for logicalID, res := range e.tmpl.Resources {
		if res.ResourceType == methodType {
			methodIDs = append(methodIDs, logicalID)
		}
	}
	sort.Strings(methodIDs)

	routed := make(map[string]bool)
	for _, id := range methodIDs {
		method := e.tmpl.Resources[id]
		target, ok := refTarget(propValue(method, "ResourceId"))
		if !ok {
			e.warnf("%s does not target a path resource; skipped", id)
			continue
		}
		part, known := paths[target]
		if !known {
			e.warnf("%s targets %s, which is not a path resource of %s; skipped", id, target, apiID)
			continue
		}
		e.claimed[id] = true
		if routed[target] {
			e.warnf("%s is a second method on %s; attach it by hand", id, target)
			continue
		}
		routed[target] = true

		route := config.RouteConfig{Name: part, Path: part}
		if verb, ok := propValue(method, "HttpMethod").(string); ok && verb != "ANY" {
			route.Method = verb
		}
		if auth, ok := propValue(method, "AuthorizationType").(string); ok && auth != "NONE" {
			route.Authorization = auth
		}
		e.stack.Routes = append(e.stack.Routes, route)
	}

	sort.Strings(resourceIDs)
	for _, id := range resourceIDs {
		if _, ok := paths[id]; ok && !routed[id] {
			e.warnf("%s has no method; no route imported", id)
		}
	}
}

// claimDeployments marks deployments of the API as recognized. The next
// build emits a fresh deployment, so nothing is read from them.
func (e *extractor) claimDeployments(apiID string) {
	for logicalID, res := range e.tmpl.Resources {
		if res.ResourceType != deploymentType {
			continue
		}
		if target, ok := refTarget(propValue(res, "RestApiId")); ok && target == apiID {
			e.claimed[logicalID] = true
		}
	}
}

// readDescription keeps a template description only when it differs from
// the one a build writes, so a round trip does not pin the generated text.
func (e *extractor) readDescription() {
	desc := e.tmpl.Description
	if desc == "" || desc == privategw.StackDescription(e.stack.Stage) {
		return
	}
	e.stack.Description = desc
}

// reportLeftovers lists everything in the template the stack file cannot
// express.
func (e *extractor) reportLeftovers() {
	if len(e.tmpl.Parameters) > 0 {
		var params []string
		for name := range e.tmpl.Parameters {
			params = append(params, name)
		}
		sort.Strings(params)
		e.warnf("parameters (%s) are not imported; stack files have no parameters", strings.Join(params, ", "))
	}

	var leftover []string
	for logicalID := range e.tmpl.Resources {
		if !e.claimed[logicalID] {
			leftover = append(leftover, logicalID)
		}
	}
	sort.Strings(leftover)
	for _, id := range leftover {
		e.warnf("%s (%s) is not part of the gateway; not imported", id, e.tmpl.Resources[id].ResourceType)
	}
}

// propValue returns the named property's parsed value, or nil.
func propValue(res *template.Resource, name string) any {
	prop, ok := res.Properties[name]
	if !ok || prop == nil {
		return nil
	}
	return prop.Value
}

// refTarget returns the logical ID a value references. The parser hands
// intrinsics back as *template.Intrinsic at property level but leaves ones
// nested inside plain maps as single-key maps, so both shapes count.
func refTarget(v any) (string, bool) {
	switch val := v.(type) {
	case *template.Intrinsic:
		if val.Type == template.IntrinsicRef {
			if target, ok := val.Args.(string); ok {
				return target, true
			}
		}
	case map[string]any:
		if len(val) == 1 {
			if target, ok := val["Ref"].(string); ok {
				return target, true
			}
		}
	}
	return "", false
}

// stringsOf keeps the string elements of a parsed list. clean reports
// whether every element was a string.
func stringsOf(v any) (out []string, clean bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	clean = true
	for _, elem := range list {
		if s, ok := elem.(string); ok {
			out = append(out, s)
		} else {
			clean = false
		}
	}
	return out, clean
}

// intOf converts the number shapes YAML and JSON parsing produce.
func intOf(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// describe names a value for a warning message.
func describe(v any) string {
	if target, ok := refTarget(v); ok {
		return fmt.Sprintf("references %s", target)
	}
	switch val := v.(type) {
	case nil:
		return "is missing"
	case *template.Intrinsic:
		return fmt.Sprintf("uses %s", val.Type)
	case map[string]any:
		if len(val) == 1 {
			for k := range val {
				return fmt.Sprintf("uses %s", k)
			}
		}
	}
	return fmt.Sprintf("is a %T", v)
}
