package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abl030/loki-mcp/internal/inventory"
	"github.com/abl030/loki-mcp/internal/naming"
	"github.com/abl030/loki-mcp/internal/toolfilter"
)

// ErrUnknownModule is wrapped when an endpoint or high-level tool names a
// module outside the fixed module set.
var ErrUnknownModule = errors.New("unknown module")

// Context is the typed intermediate representation the templates render.
// It is derived from an Inventory and never shares mutable state with it.
type Context struct {
	LokiVersion       string
	Tools             []*Tool            // Endpoints followed by high-level tools
	Endpoints         []*Tool            // One per inventory endpoint, in order
	HighLevelTools    []*Tool            // One per inventory high-level tool, in order
	EndpointsByModule map[string][]*Tool // Every fixed module is a key
	Modules           []Module           // Fixed module order
	ToolCount         int
}

// Module is the rendered metadata of one fixed module.
type Module struct {
	Name          string
	Description   string
	EndpointCount int
	Mutating      bool
}

// Tool is one generated callable.
type Tool struct {
	Name        string // Tool name (e.g., "loki_query_range")
	FuncName    string // Generated method (e.g., "lokiQueryRange")
	ArgsName    string // Generated args struct
	ImplName    string // Hand-written body, high-level tools only
	EndpointID  string // Empty for high-level tools
	Module      string // Empty for global high-level tools
	Method      string
	Path        string
	Description string // One line, used by the discovery map
	Doc         string // Full tool description
	Mutation    bool
	Danger      bool
	Confirm     bool // Generated confirm argument, default false
	HighLevel   bool

	Params         []Param
	PathParams     []Param
	QueryParams    []Param
	RequiredParams []Param
	OptionalParams []Param
	ResponseFields []string

	Response ResponseKind
	Body     BodyKind
	Filter   *Filter // Non-nil for filterable endpoints
}

// Filter describes client-side filtering of a list response.
type Filter struct {
	Path     string
	LabelKey string
}

// Param is one rendered argument.
type Param struct {
	Name        string // Tool argument name
	APIName     string // Name sent to Loki
	Field       string // Go field name
	SpecType    string
	GoType      string
	Kind        string // JSON schema kind: string, number, boolean, array
	Description string // With the enum suffix applied
	Default     string // Go literal
	HasDefault  bool
	Required    bool
	InPath      bool
	Enum        []string
}

// OmitZero reports whether a zero number or false stands for an absent
// argument. Only optional scalars without a declared default qualify.
func (p Param) OmitZero() bool {
	return !p.Required && !p.HasDefault && !p.InPath && (p.Kind == "number" || p.Kind == "boolean")
}

// Build derives the template context from inv.
func Build(inv *inventory.Inventory) (*Context, error) {
	ctx := &Context{
		LokiVersion:       inv.LokiVersion,
		EndpointsByModule: make(map[string][]*Tool, len(naming.Modules)),
	}
	for _, name := range naming.Modules {
		ctx.EndpointsByModule[name] = []*Tool{}
	}

	for _, ep := range inv.Endpoints {
		if err := checkModule(ep.ToolName, ep.Module); err != nil {
			return nil, err
		}
		t := buildEndpoint(ep)
		ctx.Endpoints = append(ctx.Endpoints, t)
		ctx.EndpointsByModule[ep.Module] = append(ctx.EndpointsByModule[ep.Module], t)
	}

	for _, hl := range inv.HighLevelTools {
		if hl.Module != "" {
			if err := checkModule(hl.ToolName, hl.Module); err != nil {
				return nil, err
			}
		}
		ctx.HighLevelTools = append(ctx.HighLevelTools, buildHighLevel(hl))
	}

	for _, name := range naming.Modules {
		info := inv.Modules[name]
		ctx.Modules = append(ctx.Modules, Module{
			Name:          name,
			Description:   info.Description,
			EndpointCount: info.EndpointCount,
			Mutating:      naming.IsMutatingModule(name),
		})
	}

	ctx.Tools = append(append(ctx.Tools, ctx.Endpoints...), ctx.HighLevelTools...)
	ctx.ToolCount = len(ctx.Endpoints) + len(ctx.HighLevelTools)
	return ctx, nil
}

func checkModule(toolName, module string) error {
	if naming.IsModule(module) {
		return nil
	}
	msg := fmt.Sprintf("codegen: %s: %v %q (valid: %s)", toolName, ErrUnknownModule, module, strings.Join(naming.Modules, ", "))
	if suggestion := toolfilter.SuggestTool(module, naming.Modules); suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
	}
	return &moduleError{msg: msg}
}

type moduleError struct{ msg string }

func (e *moduleError) Error() string        { return e.msg }
func (e *moduleError) Is(target error) bool { return target == ErrUnknownModule }

func buildEndpoint(ep inventory.Endpoint) *Tool {
	t := &Tool{
		Name:           ep.ToolName,
		FuncName:       naming.FuncName(ep.ToolName),
		ArgsName:       naming.ArgsName(ep.ToolName),
		EndpointID:     ep.ID,
		Module:         ep.Module,
		Method:         ep.Method,
		Path:           ep.Path,
		Description:    ep.Description,
		Doc:            endpointDoc(ep),
		Mutation:       ep.Mutation,
		Danger:         ep.Danger,
		Confirm:        ep.Mutation,
		ResponseFields: append([]string{}, ep.ResponseFields...),
		Response:       ClassifyResponse(ep),
		Body:           ClassifyBody(ep),
	}
	if ep.Filterable {
		t.Filter = &Filter{Path: ep.FilterPath, LabelKey: ep.FilterLabelKey}
	}

	for _, p := range ep.Parameters {
		param := buildParam(p)
		param.InPath = strings.Contains(ep.Path, "{"+p.Name+"}")
		t.addParam(param)
	}
	return t
}

func buildHighLevel(hl inventory.HighLevelTool) *Tool {
	t := &Tool{
		Name:        hl.ToolName,
		FuncName:    naming.FuncName(hl.ToolName),
		ArgsName:    naming.ArgsName(hl.ToolName),
		ImplName:    naming.ImplName(hl.ToolName),
		Module:      hl.Module,
		Description: hl.Description,
		Doc:         hl.Description,
		HighLevel:   true,
	}
	for _, p := range hl.Parameters {
		t.addParam(buildParam(p))
	}
	return t
}

// addParam records p in every partition it belongs to. The path/query and
// required/optional partitions are independent of each other.
func (t *Tool) addParam(p Param) {
	t.Params = append(t.Params, p)
	if p.InPath {
		t.PathParams = append(t.PathParams, p)
	} else {
		t.QueryParams = append(t.QueryParams, p)
	}
	if p.Required {
		t.RequiredParams = append(t.RequiredParams, p)
	} else {
		t.OptionalParams = append(t.OptionalParams, p)
	}
}

func buildParam(p inventory.Parameter) Param {
	goType := naming.ResolveType(p.Type)
	param := Param{
		Name:        p.Name,
		APIName:     p.APIName,
		Field:       naming.FieldName(p.Name),
		SpecType:    p.Type,
		GoType:      goType,
		Kind:        schemaKind(goType),
		Description: p.Description,
		Default:     naming.ResolveDefault(p.Type, p.Default),
		HasDefault:  p.HasDefault,
		Required:    p.Required,
	}
	if param.APIName == "" {
		param.APIName = p.Name
	}
	if len(p.Enum) > 0 {
		reprs := make([]string, len(p.Enum))
		for i, v := range p.Enum {
			param.Enum = append(param.Enum, fmt.Sprint(v))
			reprs[i] = enumRepr(v)
		}
		param.Description += ". Valid values: " + strings.Join(reprs, ", ")
	}
	return param
}

func enumRepr(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return fmt.Sprint(v)
}

func schemaKind(goType string) string {
	switch goType {
	case "int", "float64":
		return "number"
	case "bool":
		return "boolean"
	case "[]any":
		return "array"
	default:
		return "string"
	}
}

// endpointDoc assembles the full tool description from the endpoint's
// documentation fields.
func endpointDoc(ep inventory.Endpoint) string {
	parts := []string{ep.Description + "."}
	if ep.Notes != "" {
		parts = append(parts, ep.Notes)
	}
	if len(ep.KnownFields) > 0 {
		parts = append(parts, "Known fields: "+strings.Join(ep.KnownFields, ", ")+".")
	}
	if ep.Followup != "" {
		parts = append(parts, ep.Followup)
	}
	switch {
	case ep.Danger:
		parts = append(parts, "DANGEROUS: without confirm=true only a dry run is returned.")
	case ep.Mutation:
		parts = append(parts, "Changes state: without confirm=true only a dry run is returned.")
	}
	return strings.Join(parts, "\n\n")
}

// Warning is the dry-run warning of a dangerous tool; empty otherwise.
func (t *Tool) Warning() string {
	if !t.Danger {
		return ""
	}
	return "DANGEROUS OPERATION: " + t.Description + "."
}

// Action is the one-line description of what a confirmed call would do.
func (t *Tool) Action() string {
	return t.Method + " " + t.Path
}
