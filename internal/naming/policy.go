// Package naming holds the fixed naming and type policy shared by the
// inventory loader, the context builder and the generated server.
package naming

import (
	"fmt"
	"strconv"
)

// ToolPrefix starts every generated tool name.
const ToolPrefix = "loki_"

// Modules is the fixed, ordered set of module names.
var Modules = []string{
	"query",
	"index",
	"patterns",
	"ingest",
	"rules",
	"delete",
	"status",
	"admin",
	"format",
}

// MutatingModules are the modules whose tools change backend state. In
// read-only mode their tools are refused and not registered.
var MutatingModules = []string{"ingest", "rules", "delete", "admin"}

// IsModule reports whether name is one of the fixed modules.
func IsModule(name string) bool {
	for _, m := range Modules {
		if m == name {
			return true
		}
	}
	return false
}

// IsMutatingModule reports whether name is a mutating module.
func IsMutatingModule(name string) bool {
	for _, m := range MutatingModules {
		if m == name {
			return true
		}
	}
	return false
}

// ResolveType maps an inventory type tag to a Go type.
//
// Unknown tags fall back to "string" so a new tag in the inventory never
// aborts generation.
func ResolveType(specType string) string {
	switch specType {
	case "str", "string":
		return "string"
	case "int", "integer":
		return "int"
	case "float", "number":
		return "float64"
	case "bool", "boolean":
		return "bool"
	case "list", "array":
		return "[]any"
	default:
		return "string"
	}
}

// ResolveDefault renders raw as a Go literal of the type selected by
// ResolveType. A nil raw value yields the type's zero value.
func ResolveDefault(specType string, raw any) string {
	goType := ResolveType(specType)
	if raw == nil {
		return zeroLiteral(goType)
	}

	if goType == "string" {
		if s, ok := raw.(string); ok {
			return strconv.Quote(s)
		}
		return strconv.Quote(fmt.Sprint(raw))
	}

	switch v := raw.(type) {
	case string:
		// A textual default on a non-string parameter is kept verbatim
		// when it is already a valid literal for the target type.
		if lit, ok := coerceText(goType, v); ok {
			return lit
		}
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		if goType == "int" && v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	case []any:
		if len(v) == 0 {
			return "nil"
		}
		lit := "[]any{"
		for i, item := range v {
			if i > 0 {
				lit += ", "
			}
			lit += ResolveDefault(itemTag(item), item)
		}
		return lit + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func zeroLiteral(goType string) string {
	switch goType {
	case "string":
		return `""`
	case "int", "float64":
		return "0"
	case "bool":
		return "false"
	default:
		return "nil"
	}
}

func coerceText(goType, v string) (string, bool) {
	switch goType {
	case "int":
		if _, err := strconv.Atoi(v); err == nil {
			return v, true
		}
	case "float64":
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return v, true
		}
	case "bool":
		if b, err := strconv.ParseBool(v); err == nil {
			return strconv.FormatBool(b), true
		}
	}
	return "", false
}

func itemTag(v any) string {
	switch v.(type) {
	case string:
		return "str"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	default:
		return "list"
	}
}
