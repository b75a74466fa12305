package codegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abl030/loki-mcp/internal/inventory"
)

func renderReference(t *testing.T) *Output {
	t.Helper()
	out, err := Render(buildReference(t), RenderOptions{Source: "inventory/endpoint-inventory.json"})
	require.NoError(t, err)
	return out
}

func TestRenderProducesValidGo(t *testing.T) {
	out := renderReference(t)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "tools_gen.go", out.Source, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "server", file.Name.Name)

	src := string(out.Source)
	assert.True(t, strings.HasPrefix(src, "// Code generated by loki-mcp generate; DO NOT EDIT.\n"))
	assert.Contains(t, src, "// Source: inventory/endpoint-inventory.json (Loki 3.x)")
	assert.Contains(t, src, `const lokiVersion = "3.x"`)
}

func TestRenderToolCount(t *testing.T) {
	out := renderReference(t)
	assert.Equal(t, 42, out.ToolCount())

	ctx := buildReference(t)
	var want []string
	for _, tool := range ctx.Tools {
		want = append(want, tool.FuncName)
	}
	assert.Equal(t, want, out.Callables)
}

// mapEntries returns the number of key/value entries in the package-level
// map literal named name.
func mapEntries(t *testing.T, src []byte, name string) map[string]string {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "", src, 0)
	require.NoError(t, err)

	entries := make(map[string]string)
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok || len(spec.Names) != 1 || spec.Names[0].Name != name {
			return true
		}
		lit := spec.Values[0].(*ast.CompositeLit)
		for _, elt := range lit.Elts {
			kv := elt.(*ast.KeyValueExpr)
			key, err := strconv.Unquote(kv.Key.(*ast.BasicLit).Value)
			require.NoError(t, err)
			switch v := kv.Value.(type) {
			case *ast.BasicLit:
				entries[key], _ = strconv.Unquote(v.Value)
			case *ast.Ident:
				entries[key] = v.Name
			}
		}
		return false
	})
	return entries
}

func TestRenderDiscoveryMap(t *testing.T) {
	out := renderReference(t)

	all := mapEntries(t, out.Source, "allTools")
	assert.Len(t, all, 42)
	assert.Equal(t, "Search logs by host, container and text pattern", all["loki_search_logs"])
	assert.Contains(t, all, "loki_query_range")
	assert.Contains(t, all, "loki_validate_query")

	mutating := mapEntries(t, out.Source, "mutatingModules")
	assert.Equal(t, map[string]string{
		"ingest": "true", "rules": "true", "delete": "true", "admin": "true",
	}, mutating)
}

func TestRenderSafetyGates(t *testing.T) {
	src := string(renderReference(t).Source)

	tests := []struct {
		name string
		want string
	}{
		{"read-only gate", `if msg, ok := s.gate.Allow("admin", true); !ok {`},
		{"dry run", `return dryRun("DANGEROUS OPERATION: `},
		{"mutation without danger", `return dryRun("", "POST /loki/api/v1/push", args), nil`},
		{"confirm field", "Confirm bool `json:\"confirm\"`"},
		{"confirm property", `mcp.WithBoolean("confirm", mcp.DefaultBool(false)`},
		{"destructive hint", "mcp.WithDestructiveHintAnnotation(true)"},
		{"read-only hint", "mcp.WithReadOnlyHintAnnotation(true)"},
		{"high-level gate", `if msg, ok := s.gate.Allow("index", false); !ok {`},
		{"global gate", `if msg, ok := s.gate.Allow("", false); !ok {`},
		{"impl call", "return s.searchLogs(ctx, args)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, src, tt.want)
		})
	}
}

func TestRenderRequestShapes(t *testing.T) {
	src := string(renderReference(t).Source)

	assert.Contains(t, src, `{Name: "match[]", Value: args.Match}`)
	assert.Contains(t, src, `{Name: "name", Value: args.Name, InPath: true}`)
	assert.Contains(t, src, `Filter:   lokiclient.Filter{Path: "data", LabelKey: "host", Value: args.Filter}`)
	assert.Contains(t, src, "Body:     lokiclient.BodyYAML,")
	assert.Contains(t, src, "Body:     lokiclient.BodyForm,")
	assert.Contains(t, src, "Response: lokiclient.ResponseText,")
	assert.Contains(t, src, "Response: lokiclient.ResponseNoContent,")
	assert.Contains(t, src, `Handler: bind(s.lokiQueryRange, lokiQueryRangeArgs{Start: "1h", Limit: 100, Direction: "backward"}, "query"),`)
	assert.Contains(t, src, "type lokiReadyArgs struct{}")
	assert.NotContains(t, src, "OmitZero")
}

func TestRenderOmitZero(t *testing.T) {
	inv := &inventory.Inventory{
		Endpoints: []inventory.Endpoint{
			{
				ID: "x", Module: "query", Method: "GET", Path: "/x", ToolName: "loki_x", Description: "x",
				Parameters: []inventory.Parameter{
					{Name: "limit", Type: "int"},
					{Name: "step", Type: "int", Default: float64(5), HasDefault: true},
				},
			},
		},
	}
	ctx, err := Build(inv)
	require.NoError(t, err)
	out, err := Render(ctx, RenderOptions{})
	require.NoError(t, err)

	src := string(out.Source)
	assert.Contains(t, src, `{Name: "limit", Value: args.Limit, OmitZero: true}`)
	assert.Contains(t, src, `{Name: "step", Value: args.Step}`)
}

func TestRenderDeterministic(t *testing.T) {
	ctx := buildReference(t)
	a, err := Render(ctx, RenderOptions{})
	require.NoError(t, err)
	b, err := Render(ctx, RenderOptions{})
	require.NoError(t, err)
	require.Equal(t, a.Source, b.Source)
}

func TestRenderPackageOption(t *testing.T) {
	out, err := Render(buildReference(t), RenderOptions{Package: "lokitools"})
	require.NoError(t, err)
	assert.Contains(t, string(out.Source), "\npackage lokitools\n")
}

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestRenderCountMismatch(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "tools.go.tmpl", `package {{ .Package }}

import "context"

type Server struct{}

func (s *Server) lokiOnly(ctx context.Context, args struct{}) (string, error) { return "", nil }
`)

	_, err := Render(buildReference(t), RenderOptions{TemplateDir: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolCountMismatch))
	assert.Contains(t, err.Error(), "context has 42 tools, rendered source declares 1")
}

func TestRenderTemplateErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"empty directory", nil},
		{"entry template missing", map[string]string{"other.tmpl": "package x"}},
		{"syntax error", map[string]string{"tools.go.tmpl": "package {{ .Package "}},
		{"unknown field", map[string]string{"tools.go.tmpl": "package {{ .Nope }}"}},
		{"invalid go", map[string]string{"tools.go.tmpl": "package {{ .Package }}\nfunc {"}},
	}
	ctx := buildReference(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, body := range tt.files {
				writeTemplate(t, dir, name, body)
			}
			_, err := Render(ctx, RenderOptions{TemplateDir: dir})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTemplateRender), err.Error())
		})
	}
}

func TestCountCallables(t *testing.T) {
	src := []byte(`package server

func (s *Server) lokiReady(ctx context.Context, args lokiReadyArgs) (string, error) {}
func (s *Server) lokiPush(ctx context.Context, args lokiPushArgs) (string, error) {}
func (s *Server) searchLogs(ctx context.Context, args lokiSearchLogsArgs) (string, error) {}
func (s *Server) lokiHelper(ctx context.Context) {}
func lokiFree(ctx context.Context, args int) {}
	func (s *Server) lokiIndented(ctx context.Context, args int) {}
`)
	assert.Equal(t, []string{"lokiReady", "lokiPush"}, CountCallables(src))
	assert.Empty(t, CountCallables(nil))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "tools_gen.go")

	require.NoError(t, WriteFile(path, []byte("first")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	require.NoError(t, WriteFile(path, []byte("second")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files left behind")
}

func TestWriteFileBadParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteFile(filepath.Join(blocker, "tools_gen.go"), []byte("x"))
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Template functions
// ---------------------------------------------------------------------------

func TestTemplateFunctions(t *testing.T) {
	t.Run("paramOption", func(t *testing.T) {
		tests := []struct {
			param Param
			want  string
		}{
			{
				Param{Name: "query", Kind: "string", Required: true, Description: "LogQL query", Default: `""`},
				`mcp.WithString("query", mcp.Required(), mcp.Description("LogQL query"))`,
			},
			{
				Param{Name: "limit", Kind: "number", HasDefault: true, Default: "100", Description: "Max"},
				`mcp.WithNumber("limit", mcp.DefaultNumber(100), mcp.Description("Max"))`,
			},
			{
				Param{Name: "force", Kind: "boolean", HasDefault: true, Default: "false", Description: "Force"},
				`mcp.WithBoolean("force", mcp.DefaultBool(false), mcp.Description("Force"))`,
			},
			{
				Param{Name: "streams", Kind: "array", Required: true, Description: "Streams"},
				`mcp.WithArray("streams", mcp.Required(), mcp.Description("Streams"))`,
			},
			{
				Param{Name: "end", Kind: "string", Default: `""`, Description: "End"},
				`mcp.WithString("end", mcp.Description("End"))`,
			},
			{
				Param{
					Name: "direction", Kind: "string", HasDefault: true, Default: `"backward"`,
					Description: "Order. Valid values: 'forward', 'backward'", Enum: []string{"forward", "backward"},
				},
				`mcp.WithString("direction", mcp.DefaultString("backward"), mcp.Description("Order. Valid values: 'forward', 'backward'"), mcp.Enum("forward", "backward"))`,
			},
		}
		for _, tt := range tests {
			if got := paramOption(tt.param); got != tt.want {
				t.Errorf("paramOption(%s) = %q, want %q", tt.param.Name, got, tt.want)
			}
		}
	})

	t.Run("annotations", func(t *testing.T) {
		tests := []struct {
			tool Tool
			want string
		}{
			{Tool{}, "mcp.WithReadOnlyHintAnnotation(true)"},
			{Tool{Mutation: true}, "mcp.WithReadOnlyHintAnnotation(false), mcp.WithDestructiveHintAnnotation(false)"},
			{Tool{Mutation: true, Danger: true}, "mcp.WithReadOnlyHintAnnotation(false), mcp.WithDestructiveHintAnnotation(true)"},
		}
		for _, tt := range tests {
			if got := annotations(&tt.tool); got != tt.want {
				t.Errorf("annotations(%+v) = %q, want %q", tt.tool, got, tt.want)
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		tool := &Tool{
			ArgsName: "lokiXArgs",
			Params: []Param{
				{Field: "Query", Default: `""`},
				{Field: "Start", Default: `"1h"`, HasDefault: true},
				{Field: "Limit", Default: "100", HasDefault: true},
			},
		}
		if got, want := defaultsLiteral(tool), `lokiXArgs{Start: "1h", Limit: 100}`; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		if got, want := defaultsLiteral(&Tool{ArgsName: "lokiReadyArgs"}), "lokiReadyArgs{}"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("quote", func(t *testing.T) {
		if got, want := quoteStr(`say "hi"`), `"say \"hi\""`; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
