package schema

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/abl030/loki-mcp/internal/codegen"
)

// Properties added by the generator on top of the inventory parameters.
var (
	filterProperty = Property{
		Name:        "filter",
		Kind:        "string",
		Description: "Only keep entries containing this text",
	}
	confirmProperty = Property{
		Name:        "confirm",
		Kind:        "boolean",
		Description: "Set to true to execute; otherwise a dry run is returned",
		Default:     false,
	}
)

// Expected returns the properties a server built from t must declare, in
// Extract order.
func Expected(t *codegen.Tool) []Property {
	var props []Property
	for _, p := range t.Params {
		prop := Property{
			Name:        p.Name,
			Kind:        p.Kind,
			Description: p.Description,
			Required:    p.Required,
		}
		if !p.Required && p.HasDefault {
			prop.Default = literalValue(p.Kind, p.Default)
		}
		if p.Kind == "string" && len(p.Enum) > 0 {
			prop.Enum = append([]string(nil), p.Enum...)
		}
		props = append(props, prop)
	}
	if t.Filter != nil {
		props = append(props, filterProperty)
	}
	if t.Confirm {
		props = append(props, confirmProperty)
	}

	sort.Slice(props, func(i, j int) bool {
		if props[i].Required != props[j].Required {
			return props[i].Required
		}
		return props[i].Name < props[j].Name
	})
	return props
}

// literalValue converts a rendered Go literal back to the value a JSON
// client sees. Kinds without a schema default yield nil.
func literalValue(kind, lit string) any {
	switch kind {
	case "string":
		if s, err := strconv.Unquote(lit); err == nil {
			return s
		}
		return lit
	case "number":
		if f, err := strconv.ParseFloat(lit, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(lit); err == nil {
			return b
		}
	}
	return nil
}

// Diff lists the differences between the expected and the listed
// properties of one tool. An empty result means they agree.
func Diff(want, got []Property) []string {
	listed := make(map[string]Property, len(got))
	for _, p := range got {
		listed[p.Name] = p
	}

	var problems []string
	seen := make(map[string]bool, len(want))
	for _, w := range want {
		seen[w.Name] = true
		g, ok := listed[w.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing property %q", w.Name))
			continue
		}
		if g.Kind != w.Kind {
			problems = append(problems, fmt.Sprintf("%q: kind %s, want %s", w.Name, g.Kind, w.Kind))
		}
		if g.Required != w.Required {
			problems = append(problems, fmt.Sprintf("%q: required %t, want %t", w.Name, g.Required, w.Required))
		}
		if fmt.Sprint(g.Default) != fmt.Sprint(w.Default) {
			problems = append(problems, fmt.Sprintf("%q: default %v, want %v", w.Name, g.Default, w.Default))
		}
		if !slices.Equal(g.Enum, w.Enum) {
			problems = append(problems, fmt.Sprintf("%q: enum %v, want %v", w.Name, g.Enum, w.Enum))
		}
		if g.Description != w.Description {
			problems = append(problems, fmt.Sprintf("%q: description differs", w.Name))
		}
	}
	for _, g := range got {
		if !seen[g.Name] {
			problems = append(problems, fmt.Sprintf("unexpected property %q", g.Name))
		}
	}
	return problems
}
