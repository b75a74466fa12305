package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abl030/loki-mcp/internal/clierr"
	"github.com/abl030/loki-mcp/internal/codegen"
	"github.com/abl030/loki-mcp/internal/gocheck"
	"github.com/abl030/loki-mcp/internal/inventory"
	"github.com/abl030/loki-mcp/internal/naming"
)

var (
	flagInventory string
	flagOutput    string
	flagPackage   string
	flagTemplates string
	flagDryRun    bool
	flagVerbose   bool
	flagQuiet     bool
	flagVet       bool
)

var (
	markMutation = color.New(color.FgYellow)
	markDanger   = color.New(color.FgRed, color.Bold)
	markOK       = color.New(color.FgGreen)
	markWarn     = color.New(color.FgYellow)
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the MCP tool surface from the endpoint inventory",
	Long: `Generate the Go source of the MCP tool surface from the endpoint inventory.

The inventory is loaded and validated, turned into a template context,
rendered through the embedded templates and formatted with gofmt. The result
is written atomically to --output.

Examples:
  # Regenerate the committed tool surface
  loki-mcp generate

  # List the tools without writing anything
  loki-mcp generate --dry-run

  # Render a YAML inventory with custom templates and vet the result
  loki-mcp generate --inventory inventory.yaml --templates ./templates --vet`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&flagInventory, "inventory", "inventory/endpoint-inventory.json", "endpoint inventory (.json, .yaml or .yml)")
	f.StringVar(&flagOutput, "output", "internal/server/tools_gen.go", "generated Go file")
	f.StringVar(&flagPackage, "package", "server", "package clause of the generated file")
	f.StringVar(&flagTemplates, "templates", "", "directory overriding the embedded templates")
	f.BoolVar(&flagDryRun, "dry-run", false, "print the tool list without writing anything")
	f.BoolVar(&flagVerbose, "verbose", false, "show detailed progress during generation")
	f.BoolVar(&flagQuiet, "quiet", false, "suppress all output except errors")
	f.BoolVar(&flagVet, "vet", false, "run go vet on the output package after writing")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if flagVerbose && flagQuiet {
		return clierr.Input("--verbose and --quiet cannot be used together", "", nil)
	}
	out := cmd.OutOrStdout()

	verbose(out, "Loading endpoint inventory %s...", flagInventory)
	inv, err := inventory.Load(flagInventory)
	if err != nil {
		ue := clierr.Stage("load", err)
		ue.ExitCode = clierr.ExitInput
		if errors.Is(err, inventory.ErrMalformed) {
			ue.Fix = "correct the inventory document and run generate again"
		}
		return ue
	}
	verbose(out, "  Loki version: %s", inv.LokiVersion)
	verbose(out, "  Endpoints: %d", len(inv.Endpoints))
	verbose(out, "  High-level tools: %d", len(inv.HighLevelTools))
	verbose(out, "  Modules: %s", strings.Join(declaredModules(inv), ", "))
	if !flagQuiet {
		for _, problem := range inv.Check() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", markWarn.Sprint("Warning:"), problem)
		}
	}

	verbose(out, "Building template context...")
	ctx, err := codegen.Build(inv)
	if err != nil {
		ue := clierr.Stage("build", err)
		if errors.Is(err, codegen.ErrUnknownModule) {
			ue.ExitCode = clierr.ExitInput
			ue.Fix = "use one of: " + strings.Join(naming.Modules, ", ")
		}
		return ue
	}
	verbose(out, "  Total tools: %d", ctx.ToolCount)

	if flagDryRun {
		printToolList(out, ctx)
		return nil
	}

	verbose(out, "Rendering %s...", flagOutput)
	rendered, err := codegen.Render(ctx, codegen.RenderOptions{
		Package:     flagPackage,
		Source:      moduleRelative(flagInventory),
		TemplateDir: flagTemplates,
	})
	if err != nil {
		return clierr.Stage("render", err)
	}
	verbose(out, "  Generated %d tool functions", rendered.ToolCount())

	if err := codegen.WriteFile(flagOutput, rendered.Source); err != nil {
		return clierr.Stage("write", err)
	}

	if flagVet {
		if err := vetOutput(cmd.Context(), out); err != nil {
			return clierr.Stage("vet", err)
		}
	}

	if !flagQuiet {
		printSummary(out, ctx, rendered)
	}
	return nil
}

// vetOutput runs go vet on the package holding the generated file.
func vetOutput(ctx context.Context, out io.Writer) error {
	verbose(out, "Checking Go toolchain...")
	goVersion, err := gocheck.Check()
	if err != nil {
		return err
	}
	verbose(out, "Found %s", goVersion)

	dir := filepath.Dir(flagOutput)
	verbose(out, "Vetting %s...", dir)
	if ctx == nil {
		ctx = context.Background()
	}
	return gocheck.Vet(ctx, dir)
}

// printToolList prints the dry-run listing: endpoints, then high-level
// tools, then the totals.
func printToolList(out io.Writer, ctx *codegen.Context) {
	fmt.Fprintln(out, "Direct API tools:")
	var mutations int
	for _, t := range ctx.Endpoints {
		marks := ""
		if t.Mutation {
			mutations++
			marks += " " + markMutation.Sprint("[MUTATION]")
		}
		if t.Danger {
			marks += " " + markDanger.Sprint("[DANGER]")
		}
		fmt.Fprintf(out, "  %-40s %-10s %-6s %s%s\n", t.Name, t.Module, t.Method, t.Path, marks)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "High-level tools:")
	for _, t := range ctx.HighLevelTools {
		module := t.Module
		if module == "" {
			module = "global"
		}
		fmt.Fprintf(out, "  %-40s %-10s %s\n", t.Name, module, truncate(t.Description, 60))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d tools (%d endpoints, %d high-level, %d mutations)\n",
		ctx.ToolCount, len(ctx.Endpoints), len(ctx.HighLevelTools), mutations)
}

func printSummary(out io.Writer, ctx *codegen.Context, rendered *codegen.Output) {
	fmt.Fprintf(out, "%s Generated %d tools for Loki %s\n", markOK.Sprint("✓"), rendered.ToolCount(), ctx.LokiVersion)
	for _, m := range ctx.Modules {
		n := len(ctx.EndpointsByModule[m.Name])
		if n == 0 {
			continue
		}
		suffix := ""
		if m.Mutating {
			suffix = " (mutating)"
		}
		fmt.Fprintf(out, "  %-10s %2d%s\n", m.Name, n, suffix)
	}
	fmt.Fprintf(out, "  %-10s %2d\n", "high-level", len(ctx.HighLevelTools))
	fmt.Fprintf(out, "Output: %s\n", flagOutput)
}

// moduleRelative returns path relative to the root of the Go module holding
// it, so the generated header does not depend on the working directory.
func moduleRelative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			if rel, err := filepath.Rel(dir, abs); err == nil {
				return rel
			}
			return path
		}
		if filepath.Dir(dir) == dir {
			return path
		}
	}
}

func declaredModules(inv *inventory.Inventory) []string {
	var names []string
	for _, name := range naming.Modules {
		if _, ok := inv.Modules[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// verbose prints a message if --verbose is set.
func verbose(out io.Writer, format string, args ...any) {
	if flagVerbose {
		fmt.Fprintf(out, format+"\n", args...)
	}
}
