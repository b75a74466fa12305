// Package schema reads tool input schemas as listed by an MCP server and
// compares them with the arguments the inventory declares.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Extract parses an inputSchema into its properties, required ones first,
// then by name.
//
// A nil or empty schema, or one without properties, yields no properties.
// A property without a type is a string.
func Extract(inputSchema json.RawMessage) ([]Property, error) {
	if len(inputSchema) == 0 || string(inputSchema) == "null" {
		return nil, nil
	}

	var root struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	if err := json.Unmarshal(inputSchema, &root); err != nil {
		return nil, fmt.Errorf("schema: failed to parse inputSchema: %w", err)
	}

	required := make(map[string]bool, len(root.Required))
	for _, name := range root.Required {
		required[name] = true
	}

	props := make([]Property, 0, len(root.Properties))
	for name, raw := range root.Properties {
		var p struct {
			Type        any    `json:"type"`
			Description string `json:"description"`
			Default     any    `json:"default"`
			Enum        []any  `json:"enum"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}

		prop := Property{
			Name:        name,
			Kind:        kindOf(p.Type),
			Description: p.Description,
			Required:    required[name],
			Default:     p.Default,
		}
		for _, v := range p.Enum {
			prop.Enum = append(prop.Enum, fmt.Sprint(v))
		}
		props = append(props, prop)
	}

	sort.Slice(props, func(i, j int) bool {
		if props[i].Required != props[j].Required {
			return props[i].Required
		}
		return props[i].Name < props[j].Name
	})
	return props, nil
}
