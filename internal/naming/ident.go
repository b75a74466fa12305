package naming

import "strings"

var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"api":  "API",
	"http": "HTTP",
	"json": "JSON",
	"yaml": "YAML",
}

// FuncName converts a tool name to the unexported Go method name of its
// generated callable: "loki_query_range" -> "lokiQueryRange".
func FuncName(toolName string) string {
	return lowerFirst(camel(toolName))
}

// ArgsName returns the args struct type name of a tool.
func ArgsName(toolName string) string {
	return FuncName(toolName) + "Args"
}

// ImplName returns the method name of a hand-written high-level tool body:
// "loki_search_logs" -> "searchLogs".
func ImplName(toolName string) string {
	return lowerFirst(camel(strings.TrimPrefix(toolName, ToolPrefix)))
}

// FieldName converts a parameter name to an exported Go field name:
// "request_id" -> "RequestID", "targetLabels" -> "TargetLabels".
func FieldName(param string) string {
	return camel(param)
}

// camel splits on '_', '-', '.' and '[' ']' and upper-cases the first letter of
// each word. Words that are known initialisms are fully upper-cased.
func camel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == '[' || r == ']' || r == ' '
	})
	var b strings.Builder
	for _, w := range words {
		if up, ok := initialisms[strings.ToLower(w)]; ok {
			b.WriteString(up)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// lowerFirst lower-cases the leading word of an identifier, keeping a
// leading initialism intact in lower case ("IDList" -> "idList").
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	for word, up := range initialisms {
		if strings.HasPrefix(s, up) && (len(s) == len(up) || !isLower(s[len(up)])) {
			return word + s[len(up):]
		}
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
