package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const referenceInventory = "../../inventory/endpoint-inventory.json"

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// Reference inventory
// ---------------------------------------------------------------------------

func TestLoad_ReferenceInventory(t *testing.T) {
	inv, err := Load(referenceInventory)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if inv.LokiVersion != "3.x" {
		t.Errorf("LokiVersion = %q, want %q", inv.LokiVersion, "3.x")
	}
	if len(inv.Endpoints) != 34 {
		t.Errorf("len(Endpoints) = %d, want 34", len(inv.Endpoints))
	}
	if len(inv.HighLevelTools) != 8 {
		t.Errorf("len(HighLevelTools) = %d, want 8", len(inv.HighLevelTools))
	}
	if len(inv.Modules) != 9 {
		t.Errorf("len(Modules) = %d, want 9", len(inv.Modules))
	}

	wantCounts := map[string]int{
		"query": 5, "index": 3, "patterns": 1, "ingest": 1, "rules": 7,
		"delete": 3, "status": 7, "admin": 6, "format": 1,
	}
	counts := inv.ModuleCounts()
	for module, want := range wantCounts {
		if counts[module] != want {
			t.Errorf("endpoints in %s = %d, want %d", module, counts[module], want)
		}
		if inv.Modules[module].EndpointCount != want {
			t.Errorf("Modules[%s].EndpointCount = %d, want %d", module, inv.Modules[module].EndpointCount, want)
		}
	}

	if problems := inv.Check(); len(problems) != 0 {
		t.Errorf("Check() = %v, want no problems", problems)
	}
}

func TestLoad_ReferenceSafetyFlags(t *testing.T) {
	inv, err := Load(referenceInventory)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	wantMutation := map[string]bool{
		"push": true, "create_rule_group": true, "delete_rule_group": true,
		"delete_rules_namespace": true, "create_delete_request": true,
		"cancel_delete_request": true, "set_log_level": true, "flush": true,
		"prepare_shutdown": true, "cancel_prepare_shutdown": true, "shutdown": true,
	}
	wantDanger := map[string]bool{
		"delete_rule_group": true, "delete_rules_namespace": true,
		"create_delete_request": true, "flush": true, "prepare_shutdown": true,
		"shutdown": true,
	}

	for _, ep := range inv.Endpoints {
		if ep.Mutation != wantMutation[ep.ID] {
			t.Errorf("%s: Mutation = %v, want %v", ep.ID, ep.Mutation, wantMutation[ep.ID])
		}
		if ep.Danger != wantDanger[ep.ID] {
			t.Errorf("%s: Danger = %v, want %v", ep.ID, ep.Danger, wantDanger[ep.ID])
		}
		if ep.Danger && !ep.Mutation {
			t.Errorf("%s: danger without mutation", ep.ID)
		}
		if !strings.HasPrefix(ep.ToolName, "loki_") {
			t.Errorf("%s: tool name %q lacks prefix", ep.ID, ep.ToolName)
		}
	}
}

func TestLoad_ReferenceHighLevelTools(t *testing.T) {
	inv, err := Load(referenceInventory)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := map[string]string{
		"loki_search_logs":     "query",
		"loki_error_summary":   "query",
		"loki_volume_by_label": "index",
		"loki_compare_hosts":   "query",
		"loki_get_overview":    "",
		"loki_search_tools":    "",
		"loki_report_issue":    "",
		"loki_validate_query":  "format",
	}
	for _, tool := range inv.HighLevelTools {
		module, ok := want[tool.ToolName]
		if !ok {
			t.Errorf("unexpected high-level tool %q", tool.ToolName)
			continue
		}
		if tool.Module != module {
			t.Errorf("%s: Module = %q, want %q", tool.ToolName, tool.Module, module)
		}
	}
}

func TestLoad_ParameterDefaults(t *testing.T) {
	inv, err := Load(referenceInventory)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var queryRange Endpoint
	for _, ep := range inv.Endpoints {
		if ep.ID == "query_range" {
			queryRange = ep
		}
	}

	byName := make(map[string]Parameter)
	for _, p := range queryRange.Parameters {
		byName[p.Name] = p
	}

	if p := byName["direction"]; !p.HasDefault || p.Default != "backward" {
		t.Errorf("direction: HasDefault=%v Default=%v, want true/backward", p.HasDefault, p.Default)
	}
	if p := byName["end"]; p.HasDefault {
		t.Errorf("end: HasDefault = true, want false")
	}
	if p := byName["limit"]; !p.HasDefault || p.Default != float64(100) {
		t.Errorf("limit: HasDefault=%v Default=%v, want true/100", p.HasDefault, p.Default)
	}
	if p := byName["query"]; !p.Required || p.APIName != "query" {
		t.Errorf("query: Required=%v APIName=%q", p.Required, p.APIName)
	}
}

// ---------------------------------------------------------------------------
// Optional field defaults
// ---------------------------------------------------------------------------

func TestLoad_OptionalFieldDefaults(t *testing.T) {
	path := writeTestFile(t, "inv.json", `{
		"endpoints": [
			{"id": "ready", "module": "status", "method": "get", "path": "/ready",
			 "tool_name": "loki_ready", "description": "Readiness"}
		],
		"high_level_tools": [
			{"tool_name": "loki_get_overview", "description": "Overview", "module": null}
		]
	}`)

	inv, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if inv.LokiVersion != UnknownVersion {
		t.Errorf("LokiVersion = %q, want %q", inv.LokiVersion, UnknownVersion)
	}

	ep := inv.Endpoints[0]
	if ep.Method != "GET" {
		t.Errorf("Method = %q, want GET", ep.Method)
	}
	if ep.Parameters == nil || len(ep.Parameters) != 0 {
		t.Errorf("Parameters = %v, want empty", ep.Parameters)
	}
	if ep.ResponseFields == nil || len(ep.ResponseFields) != 0 {
		t.Errorf("ResponseFields = %v, want empty", ep.ResponseFields)
	}
	if ep.Mutation || ep.Danger || ep.Filterable {
		t.Errorf("flags = %v/%v/%v, want all false", ep.Mutation, ep.Danger, ep.Filterable)
	}
	if ep.Notes != "" || ep.Followup != "" {
		t.Errorf("Notes/Followup = %q/%q, want blank", ep.Notes, ep.Followup)
	}
	if len(ep.KnownFields) != 0 {
		t.Errorf("KnownFields = %v, want empty", ep.KnownFields)
	}
	if inv.HighLevelTools[0].Module != "" {
		t.Errorf("global tool Module = %q, want empty", inv.HighLevelTools[0].Module)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeTestFile(t, "inv.yaml", `
loki_version: "3.1"
modules:
  query: {description: Queries, endpoint_count: 1}
endpoints:
  - id: list_labels
    module: query
    method: GET
    path: /loki/api/v1/labels
    tool_name: loki_list_labels
    description: List labels
    parameters:
      - {name: start, type: str, required: false, default: 6h, description: Start}
      - {name: limit, type: int, required: false, default: 10, description: Limit}
high_level_tools: []
`)

	inv, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if inv.LokiVersion != "3.1" {
		t.Errorf("LokiVersion = %q", inv.LokiVersion)
	}
	params := inv.Endpoints[0].Parameters
	if len(params) != 2 || params[0].Default != "6h" || params[1].Default != 10 {
		t.Errorf("parameters = %+v", params)
	}
	if problems := inv.Check(); len(problems) != 0 {
		t.Errorf("Check() = %v", problems)
	}
}

// ---------------------------------------------------------------------------
// Malformed documents
// ---------------------------------------------------------------------------

func TestLoad_Malformed(t *testing.T) {
	endpoint := func(body string) string {
		return `{"endpoints": [` + body + `]}`
	}

	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "invalid json",
			doc:     `{"endpoints": [`,
			wantMsg: "invalid JSON",
		},
		{
			name:    "missing id",
			doc:     endpoint(`{"module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x", "description": "x"}`),
			wantMsg: `missing required field "id"`,
		},
		{
			name:    "missing method",
			doc:     endpoint(`{"id": "x", "module": "query", "path": "/x", "tool_name": "loki_x", "description": "x"}`),
			wantMsg: `endpoints[0] ("x"): missing required field "method"`,
		},
		{
			name:    "missing description",
			doc:     endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x"}`),
			wantMsg: `missing required field "description"`,
		},
		{
			name: "missing parameter required flag",
			doc: endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x", "description": "x",
				"parameters": [{"name": "q", "type": "str"}]}`),
			wantMsg: `parameters[0] ("q"): missing required field "required"`,
		},
		{
			name: "missing parameter type",
			doc: endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x", "description": "x",
				"parameters": [{"name": "q", "required": true}]}`),
			wantMsg: `missing required field "type"`,
		},
		{
			name:    "schema type violation",
			doc:     endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x", "description": "x", "mutation": "yes"}`),
			wantMsg: "malformed inventory",
		},
		{
			name:    "unknown method",
			doc:     endpoint(`{"id": "x", "module": "query", "method": "FETCH", "path": "/x", "tool_name": "loki_x", "description": "x"}`),
			wantMsg: "malformed inventory",
		},
		{
			name:    "danger without mutation",
			doc:     endpoint(`{"id": "x", "module": "admin", "method": "POST", "path": "/x", "tool_name": "loki_x", "description": "x", "danger": true}`),
			wantMsg: "danger requires mutation",
		},
		{
			name:    "tool name without prefix",
			doc:     endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "query_x", "description": "x"}`),
			wantMsg: `must start with "loki_"`,
		},
		{
			name:    "unmatched path placeholder",
			doc:     endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/label/{name}/values", "tool_name": "loki_x", "description": "x"}`),
			wantMsg: "path placeholder {name} has no matching parameter",
		},
		{
			name: "duplicate endpoint id",
			doc: endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x", "description": "x"},
				{"id": "x", "module": "query", "method": "GET", "path": "/y", "tool_name": "loki_y", "description": "y"}`),
			wantMsg: "duplicate endpoint id",
		},
		{
			name: "duplicate tool name",
			doc: endpoint(`{"id": "x", "module": "query", "method": "GET", "path": "/x", "tool_name": "loki_x", "description": "x"},
				{"id": "y", "module": "query", "method": "GET", "path": "/y", "tool_name": "loki_x", "description": "y"}`),
			wantMsg: "duplicate tool name",
		},
		{
			name: "reserved parameter",
			doc: endpoint(`{"id": "x", "module": "admin", "method": "POST", "path": "/x", "tool_name": "loki_x", "description": "x",
				"mutation": true, "parameters": [{"name": "confirm", "type": "bool", "required": false}]}`),
			wantMsg: "parameter name is reserved",
		},
		{
			name:    "high-level tool without name",
			doc:     `{"high_level_tools": [{"description": "x"}]}`,
			wantMsg: `high_level_tools[0]: missing required field "tool_name"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "inv.json", tt.doc)
			inv, err := Load(path)
			if err == nil {
				t.Fatalf("Load() = %+v, want error", inv)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error %q does not wrap ErrMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrMalformed) {
		t.Errorf("missing file reported as malformed: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}

func TestLoad_UnknownFieldsIgnored(t *testing.T) {
	path := writeTestFile(t, "inv.json", `{
		"loki_version": "3.x",
		"generated_by": "hand",
		"endpoints": [
			{"id": "ready", "module": "status", "method": "GET", "path": "/ready",
			 "tool_name": "loki_ready", "description": "Readiness", "owner": "sre"}
		]
	}`)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
}
