package schema

import (
	"fmt"
	"sort"

	"github.com/abl030/loki-mcp/internal/codegen"
	"github.com/abl030/loki-mcp/internal/mcp"
)

// Report is the outcome of comparing a listed tool surface with the
// context it was generated from.
type Report struct {
	Checked    int                 // Listed tools found in the context
	Unexpected []string            // Listed tools the context does not know
	Missing    []string            // Context tools the server did not list
	Problems   map[string][]string // Per listed tool
}

// OK reports whether every listed tool matches the context. Missing tools
// do not count: configuration may legitimately hide them.
func (r *Report) OK() bool {
	return len(r.Unexpected) == 0 && len(r.Problems) == 0
}

// Compare checks the tools listed by a server against ctx: description,
// behavior hints and input schema of every tool.
func Compare(ctx *codegen.Context, listed []mcp.Tool) *Report {
	byName := make(map[string]*codegen.Tool, len(ctx.Tools))
	for _, t := range ctx.Tools {
		byName[t.Name] = t
	}

	r := &Report{Problems: make(map[string][]string)}
	seen := make(map[string]bool, len(listed))
	for _, lt := range listed {
		seen[lt.Name] = true
		want, ok := byName[lt.Name]
		if !ok {
			r.Unexpected = append(r.Unexpected, lt.Name)
			continue
		}
		r.Checked++
		if problems := compareTool(want, lt); len(problems) > 0 {
			r.Problems[lt.Name] = problems
		}
	}
	for _, t := range ctx.Tools {
		if !seen[t.Name] {
			r.Missing = append(r.Missing, t.Name)
		}
	}
	sort.Strings(r.Unexpected)
	return r
}

func compareTool(want *codegen.Tool, got mcp.Tool) []string {
	var problems []string
	if got.Description != want.Doc {
		problems = append(problems, "tool description differs")
	}

	a := got.Annotations
	if a == nil {
		a = &mcp.ToolAnnotations{}
	}
	if a.ReadOnlyHint == nil || *a.ReadOnlyHint == want.Mutation {
		problems = append(problems, fmt.Sprintf("readOnlyHint %s, want %t", hint(a.ReadOnlyHint), !want.Mutation))
	}
	if want.Mutation && (a.DestructiveHint == nil || *a.DestructiveHint != want.Danger) {
		problems = append(problems, fmt.Sprintf("destructiveHint %s, want %t", hint(a.DestructiveHint), want.Danger))
	}

	props, err := Extract(got.InputSchema)
	if err != nil {
		return append(problems, err.Error())
	}
	return append(problems, Diff(Expected(want), props)...)
}

func hint(b *bool) string {
	if b == nil {
		return "unset"
	}
	return fmt.Sprint(*b)
}
