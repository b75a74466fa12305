package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
)

var (
	// ErrTemplateRender is wrapped when a template is missing, does not
	// parse, fails to execute, or produces source that does not format.
	ErrTemplateRender = errors.New("template render failed")

	// ErrToolCountMismatch is wrapped when the rendered source does not
	// contain exactly one callable per tool in the context.
	ErrToolCountMismatch = errors.New("tool count mismatch")
)

// signatureRe matches the signature of every generated tool callable.
var signatureRe = regexp.MustCompile(`(?m)^func \(s \*Server\) (loki[A-Z]\w*)\(ctx context\.Context, args `)

// RenderOptions controls Render.
type RenderOptions struct {
	Package     string // Package clause of the generated file, defaults to "server"
	Source      string // Inventory path recorded in the header
	TemplateDir string // Overrides the embedded templates when set
}

// Output is a rendered tool surface.
type Output struct {
	Source    []byte
	Callables []string // Generated callables in emission order
}

// ToolCount is the number of callables found in the rendered source.
func (o *Output) ToolCount() int {
	return len(o.Callables)
}

type renderData struct {
	*Context
	Package string
	Source  string
}

// Render executes the templates against ctx, formats the result with
// go/format and checks that it declares exactly ctx.ToolCount callables.
// Rendering is deterministic: the same context always yields the same bytes.
func Render(ctx *Context, opts RenderOptions) (*Output, error) {
	if opts.Package == "" {
		opts.Package = "server"
	}

	tmpl, err := loadTemplates(opts.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w: %v", ErrTemplateRender, err)
	}
	if tmpl.Lookup(templateName) == nil {
		return nil, fmt.Errorf("codegen: %w: template %q not defined", ErrTemplateRender, templateName)
	}

	var buf bytes.Buffer
	data := renderData{Context: ctx, Package: opts.Package, Source: filepath.ToSlash(opts.Source)}
	if err := tmpl.ExecuteTemplate(&buf, templateName, data); err != nil {
		return nil, fmt.Errorf("codegen: %w: %v", ErrTemplateRender, err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: %w: generated source does not parse: %v", ErrTemplateRender, err)
	}

	out := &Output{Source: src, Callables: CountCallables(src)}
	if out.ToolCount() != ctx.ToolCount {
		return nil, fmt.Errorf("codegen: %w: context has %d tools, rendered source declares %d",
			ErrToolCountMismatch, ctx.ToolCount, out.ToolCount())
	}
	return out, nil
}

// CountCallables returns the names of the generated tool callables declared
// in src.
func CountCallables(src []byte) []string {
	var names []string
	for _, m := range signatureRe.FindAllSubmatch(src, -1) {
		names = append(names, string(m[1]))
	}
	return names
}

// WriteFile replaces path with data. The data is written to a temporary file
// in the same directory and renamed into place, so a failed write never
// leaves a truncated file behind. Parent directories are created as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("codegen: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("codegen: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("codegen: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("codegen: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("codegen: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("codegen: rename into %s: %w", path, err)
	}
	return nil
}
