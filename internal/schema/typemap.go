package schema

// kindOf reduces a JSON Schema type to the argument kinds the server
// declares. integer counts as number, a nullable type uses its first
// non-null entry and anything else is a string.
func kindOf(schemaType any) string {
	switch t := schemaType.(type) {
	case string:
		return singleKind(t)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return singleKind(s)
			}
		}
	}
	return "string"
}

func singleKind(t string) string {
	switch t {
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		return "array"
	default:
		return "string"
	}
}
