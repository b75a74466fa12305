package schema

// Property is one argument of a tool input schema.
type Property struct {
	Name        string
	Kind        string // string, number, boolean or array
	Description string
	Required    bool
	Default     any      // nil when the schema declares none
	Enum        []string // nil when the property is not an enum
}
