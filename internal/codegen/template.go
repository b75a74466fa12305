package codegen

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

// templateName is the entry template that produces the tool surface.
const templateName = "tools.go.tmpl"

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcs = template.FuncMap{
	"quote":       quoteStr,
	"paramOption": paramOption,
	"annotations": annotations,
	"defaults":    defaultsLiteral,
}

// loadTemplates parses the embedded templates, or the *.tmpl files of dir
// when dir is not empty.
func loadTemplates(dir string) (*template.Template, error) {
	var fsys fs.FS
	var pattern string
	if dir == "" {
		fsys, pattern = templatesFS, "templates/*.tmpl"
	} else {
		fsys, pattern = os.DirFS(dir), "*.tmpl"
	}
	return template.New(templateName).Funcs(funcs).Option("missingkey=error").ParseFS(fsys, pattern)
}

func quoteStr(s string) string {
	return fmt.Sprintf("%q", s)
}

// paramOption renders the mcp-go property declaration of p.
func paramOption(p Param) string {
	var with string
	switch p.Kind {
	case "number":
		with = "WithNumber"
	case "boolean":
		with = "WithBoolean"
	case "array":
		with = "WithArray"
	default:
		with = "WithString"
	}

	var opts []string
	if p.Required {
		opts = append(opts, "mcp.Required()")
	} else if p.HasDefault {
		switch p.Kind {
		case "string":
			opts = append(opts, "mcp.DefaultString("+p.Default+")")
		case "number":
			opts = append(opts, "mcp.DefaultNumber("+p.Default+")")
		case "boolean":
			opts = append(opts, "mcp.DefaultBool("+p.Default+")")
		}
	}
	opts = append(opts, "mcp.Description("+quoteStr(p.Description)+")")
	if len(p.Enum) > 0 && p.Kind == "string" {
		vals := make([]string, len(p.Enum))
		for i, v := range p.Enum {
			vals[i] = quoteStr(v)
		}
		opts = append(opts, "mcp.Enum("+strings.Join(vals, ", ")+")")
	}
	return fmt.Sprintf("mcp.%s(%s, %s)", with, quoteStr(p.Name), strings.Join(opts, ", "))
}

// annotations renders the MCP behavior hints of t.
func annotations(t *Tool) string {
	if !t.Mutation {
		return "mcp.WithReadOnlyHintAnnotation(true)"
	}
	return fmt.Sprintf("mcp.WithReadOnlyHintAnnotation(false), mcp.WithDestructiveHintAnnotation(%t)", t.Danger)
}

// defaultsLiteral renders the args struct literal holding every declared
// default of t.
func defaultsLiteral(t *Tool) string {
	var fields []string
	for _, p := range t.Params {
		if p.HasDefault {
			fields = append(fields, p.Field+": "+p.Default)
		}
	}
	return t.ArgsName + "{" + strings.Join(fields, ", ") + "}"
}
