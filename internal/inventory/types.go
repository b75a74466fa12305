// Package inventory loads the declarative Loki endpoint catalog.
package inventory

import (
	"fmt"
	"sort"
)

// UnknownVersion is used when the document does not declare loki_version.
const UnknownVersion = "unknown"

// Parameter is one argument of an endpoint or high-level tool.
type Parameter struct {
	Name        string // Tool argument name
	APIName     string // Name sent to Loki, defaults to Name
	Type        string // Inventory type tag (str, int, list, bool, float)
	Required    bool
	Description string
	Default     any  // Declared default, nil when absent
	HasDefault  bool // True only when the document declared a default
	Enum        []any
}

// Endpoint is one Loki HTTP operation.
type Endpoint struct {
	ID             string
	Module         string
	Method         string
	Path           string
	ToolName       string
	Description    string
	Notes          string
	Followup       string
	Mutation       bool
	Danger         bool
	Parameters     []Parameter
	ResponseFields []string
	Filterable     bool
	FilterPath     string
	FilterLabelKey string
	KnownFields    []string
}

// HighLevelTool is a hand-written composite tool. An empty Module means the
// tool is global and never gated by LOKI_MODULES.
type HighLevelTool struct {
	ToolName    string
	Description string
	Module      string
	Parameters  []Parameter
}

// ModuleInfo describes one module.
type ModuleInfo struct {
	Name          string
	Description   string
	EndpointCount int
}

// Inventory is the root of a loaded document. It is built once by Load and
// must not be modified afterwards.
type Inventory struct {
	LokiVersion    string
	Endpoints      []Endpoint
	HighLevelTools []HighLevelTool
	Modules        map[string]ModuleInfo
}

// ModuleCounts returns the number of endpoints per module.
func (inv *Inventory) ModuleCounts() map[string]int {
	counts := make(map[string]int)
	for _, ep := range inv.Endpoints {
		counts[ep.Module]++
	}
	return counts
}

// Check reports disagreements between the declared module metadata and the
// endpoints actually present. The problems are advisory; Load does not fail
// on them.
func (inv *Inventory) Check() []string {
	var problems []string
	counts := inv.ModuleCounts()
	for _, name := range sortedKeys(inv.Modules) {
		info := inv.Modules[name]
		if got := counts[name]; got != info.EndpointCount {
			problems = append(problems, fmt.Sprintf("module %q declares %d endpoints, found %d", name, info.EndpointCount, got))
		}
	}
	for _, name := range sortedKeys(counts) {
		if _, ok := inv.Modules[name]; !ok {
			problems = append(problems, fmt.Sprintf("module %q has endpoints but no metadata", name))
		}
	}
	return problems
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
