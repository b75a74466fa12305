package inventory

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abl030/loki-mcp/internal/naming"
)

// ErrMalformed is wrapped by every error caused by a missing or invalid field
// in the inventory document.
var ErrMalformed = errors.New("malformed inventory")

// reservedParams are argument names the generated server adds itself.
var reservedParams = map[string]bool{"confirm": true, "filter": true}

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

//go:embed inventory.schema.json
var schemaSource []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

type rawParameter struct {
	Name        *string `json:"name" yaml:"name"`
	APIName     string  `json:"api_name" yaml:"api_name"`
	Type        *string `json:"type" yaml:"type"`
	Required    *bool   `json:"required" yaml:"required"`
	Description string  `json:"description" yaml:"description"`
	Default     any     `json:"default" yaml:"default"`
	Enum        []any   `json:"enum" yaml:"enum"`
}

type rawEndpoint struct {
	ID             *string        `json:"id" yaml:"id"`
	Module         *string        `json:"module" yaml:"module"`
	Method         *string        `json:"method" yaml:"method"`
	Path           *string        `json:"path" yaml:"path"`
	ToolName       *string        `json:"tool_name" yaml:"tool_name"`
	Description    *string        `json:"description" yaml:"description"`
	Notes          string         `json:"notes" yaml:"notes"`
	Followup       string         `json:"followup" yaml:"followup"`
	Mutation       bool           `json:"mutation" yaml:"mutation"`
	Danger         bool           `json:"danger" yaml:"danger"`
	Parameters     []rawParameter `json:"parameters" yaml:"parameters"`
	ResponseFields []string       `json:"response_fields" yaml:"response_fields"`
	Filterable     bool           `json:"filterable" yaml:"filterable"`
	FilterPath     string         `json:"filter_path" yaml:"filter_path"`
	FilterLabelKey string         `json:"filter_label_key" yaml:"filter_label_key"`
	KnownFields    []string       `json:"known_fields" yaml:"known_fields"`
}

type rawHighLevelTool struct {
	ToolName    *string        `json:"tool_name" yaml:"tool_name"`
	Description string         `json:"description" yaml:"description"`
	Module      *string        `json:"module" yaml:"module"`
	Parameters  []rawParameter `json:"parameters" yaml:"parameters"`
}

type rawModule struct {
	Description   string `json:"description" yaml:"description"`
	EndpointCount int    `json:"endpoint_count" yaml:"endpoint_count"`
}

type rawInventory struct {
	LokiVersion    string               `json:"loki_version" yaml:"loki_version"`
	Endpoints      []rawEndpoint        `json:"endpoints" yaml:"endpoints"`
	HighLevelTools []rawHighLevelTool   `json:"high_level_tools" yaml:"high_level_tools"`
	Modules        map[string]rawModule `json:"modules" yaml:"modules"`
}

// Load reads and validates the inventory document at path. JSON documents are
// checked against the embedded JSON Schema before decoding; .yaml and .yml
// documents are decoded with the same field names.
//
// Any structural defect fails the whole load with an error wrapping
// ErrMalformed. The returned Inventory is never partially populated.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON validates and decodes a JSON inventory document.
func ParseJSON(data []byte) (*Inventory, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("inventory: %w: invalid JSON: %v", ErrMalformed, err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("inventory: %w: %v", ErrMalformed, err)
	}

	var raw rawInventory
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("inventory: %w: %v", ErrMalformed, err)
	}
	return raw.build()
}

// ParseYAML decodes a YAML inventory document.
func ParseYAML(data []byte) (*Inventory, error) {
	var raw rawInventory
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("inventory: %w: invalid YAML: %v", ErrMalformed, err)
	}
	return raw.build()
}

func validateSchema(doc any) error {
	schemaOnce.Do(func() {
		var schemaDoc any
		if err := json.Unmarshal(schemaSource, &schemaDoc); err != nil {
			schemaErr = fmt.Errorf("unmarshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("inventory.schema.json", schemaDoc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("inventory.schema.json")
	})
	if schemaErr != nil {
		return schemaErr
	}
	return compiledSchema.Validate(doc)
}

func (raw *rawInventory) build() (*Inventory, error) {
	inv := &Inventory{
		LokiVersion: raw.LokiVersion,
		Modules:     make(map[string]ModuleInfo, len(raw.Modules)),
	}
	if inv.LokiVersion == "" {
		inv.LokiVersion = UnknownVersion
	}

	ids := make(map[string]bool)
	tools := make(map[string]bool)

	for i, re := range raw.Endpoints {
		ep, err := re.build(i)
		if err != nil {
			return nil, err
		}
		where := endpointRef(i, ep.ID)
		if ids[ep.ID] {
			return nil, fmt.Errorf("inventory: %w: %s: duplicate endpoint id", ErrMalformed, where)
		}
		ids[ep.ID] = true
		if tools[ep.ToolName] {
			return nil, fmt.Errorf("inventory: %w: %s: duplicate tool name %q", ErrMalformed, where, ep.ToolName)
		}
		tools[ep.ToolName] = true
		inv.Endpoints = append(inv.Endpoints, ep)
	}

	for i, rt := range raw.HighLevelTools {
		where := fmt.Sprintf("high_level_tools[%d]", i)
		if rt.ToolName == nil || *rt.ToolName == "" {
			return nil, missing(where, "tool_name")
		}
		t := HighLevelTool{
			ToolName:    *rt.ToolName,
			Description: rt.Description,
		}
		where = fmt.Sprintf("%s (%q)", where, t.ToolName)
		if rt.Module != nil {
			t.Module = *rt.Module
		}
		if err := checkToolName(where, t.ToolName); err != nil {
			return nil, err
		}
		if tools[t.ToolName] {
			return nil, fmt.Errorf("inventory: %w: %s: duplicate tool name", ErrMalformed, where)
		}
		tools[t.ToolName] = true
		params, err := buildParameters(where, rt.Parameters)
		if err != nil {
			return nil, err
		}
		t.Parameters = params
		inv.HighLevelTools = append(inv.HighLevelTools, t)
	}

	for name, rm := range raw.Modules {
		inv.Modules[name] = ModuleInfo{
			Name:          name,
			Description:   rm.Description,
			EndpointCount: rm.EndpointCount,
		}
	}

	return inv, nil
}

func (re *rawEndpoint) build(i int) (Endpoint, error) {
	where := fmt.Sprintf("endpoints[%d]", i)
	if re.ID == nil || *re.ID == "" {
		return Endpoint{}, missing(where, "id")
	}
	where = endpointRef(i, *re.ID)

	required := []struct {
		field string
		value *string
	}{
		{"module", re.Module},
		{"method", re.Method},
		{"path", re.Path},
		{"tool_name", re.ToolName},
		{"description", re.Description},
	}
	for _, r := range required {
		if r.value == nil {
			return Endpoint{}, missing(where, r.field)
		}
	}

	ep := Endpoint{
		ID:             *re.ID,
		Module:         *re.Module,
		Method:         strings.ToUpper(*re.Method),
		Path:           *re.Path,
		ToolName:       *re.ToolName,
		Description:    *re.Description,
		Notes:          re.Notes,
		Followup:       re.Followup,
		Mutation:       re.Mutation,
		Danger:         re.Danger,
		ResponseFields: orEmpty(re.ResponseFields),
		Filterable:     re.Filterable,
		FilterPath:     re.FilterPath,
		FilterLabelKey: re.FilterLabelKey,
		KnownFields:    orEmpty(re.KnownFields),
	}

	if err := checkToolName(where, ep.ToolName); err != nil {
		return Endpoint{}, err
	}
	if ep.Danger && !ep.Mutation {
		return Endpoint{}, fmt.Errorf("inventory: %w: %s: danger requires mutation", ErrMalformed, where)
	}

	params, err := buildParameters(where, re.Parameters)
	if err != nil {
		return Endpoint{}, err
	}
	ep.Parameters = params

	names := make(map[string]bool, len(params))
	for _, p := range params {
		names[p.Name] = true
	}
	for _, m := range placeholderRe.FindAllStringSubmatch(ep.Path, -1) {
		if !names[m[1]] {
			return Endpoint{}, fmt.Errorf("inventory: %w: %s: path placeholder {%s} has no matching parameter", ErrMalformed, where, m[1])
		}
	}

	return ep, nil
}

func buildParameters(where string, raw []rawParameter) ([]Parameter, error) {
	params := make([]Parameter, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for j, rp := range raw {
		pwhere := fmt.Sprintf("%s.parameters[%d]", where, j)
		if rp.Name == nil || *rp.Name == "" {
			return nil, missing(pwhere, "name")
		}
		pwhere = fmt.Sprintf("%s (%q)", pwhere, *rp.Name)
		if rp.Type == nil {
			return nil, missing(pwhere, "type")
		}
		if rp.Required == nil {
			return nil, missing(pwhere, "required")
		}
		if seen[*rp.Name] {
			return nil, fmt.Errorf("inventory: %w: %s: duplicate parameter name", ErrMalformed, pwhere)
		}
		if reservedParams[*rp.Name] {
			return nil, fmt.Errorf("inventory: %w: %s: parameter name is reserved", ErrMalformed, pwhere)
		}
		seen[*rp.Name] = true

		p := Parameter{
			Name:        *rp.Name,
			APIName:     rp.APIName,
			Type:        *rp.Type,
			Required:    *rp.Required,
			Description: rp.Description,
			Default:     rp.Default,
			HasDefault:  rp.Default != nil,
			Enum:        rp.Enum,
		}
		if p.APIName == "" {
			p.APIName = p.Name
		}
		params = append(params, p)
	}
	return params, nil
}

func checkToolName(where, name string) error {
	if !strings.HasPrefix(name, naming.ToolPrefix) || len(name) == len(naming.ToolPrefix) {
		return fmt.Errorf("inventory: %w: %s: tool name %q must start with %q", ErrMalformed, where, name, naming.ToolPrefix)
	}
	return nil
}

func missing(where, field string) error {
	return fmt.Errorf("inventory: %w: %s: missing required field %q", ErrMalformed, where, field)
}

func endpointRef(i int, id string) string {
	return fmt.Sprintf("endpoints[%d] (%q)", i, id)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
