package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reborrow-generator/internal/analyze"
	"reborrow-generator/internal/config"
	"reborrow-generator/internal/diagnostic"
	"reborrow-generator/internal/gen"
	"reborrow-generator/internal/plan"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	posColor  = color.New(color.Faint)
	hintColor = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
)

func errUnknownColor(mode string) error {
	return fmt.Errorf("unknown color mode %q (must be auto, on or off)", mode)
}

// addPipelineFlags registers the flags shared by generate, check and inspect.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("strict", false, "check records against their counterparts field by field")
	cmd.Flags().String("output", "", "generated file name in each package (default reborrow_gen.go)")
	cmd.Flags().StringSlice("tags", nil, "build tags passed to the package loader")
	cmd.Flags().Bool("no-warnings", false, "do not print warnings")
}

// pipeline is the outcome of loading, resolving and rendering.
type pipeline struct {
	cfg   *config.File
	graph *analyze.Graph
	plan  *plan.ResolvedPlan
	files []gen.GeneratedFile
}

// loadConfig reads the file named by --config, or the one discovered
// upwards from the working directory, or falls back to defaults.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if path == "" {
		found, ok, err := config.Discover(".")
		if err != nil {
			return nil, err
		}

		if !ok {
			return config.Default(), nil
		}

		path = found
	}

	slog.Debug("using config", "path", path)

	return config.LoadFile(path)
}

// applyFlags lets command-line flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.File) error {
	if cmd.Flags().Changed("strict") {
		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return err
		}

		cfg.Strict = strict
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if output != "" {
		if filepath.Base(output) != output {
			return fmt.Errorf("--output must be a file name, got %q", output)
		}

		cfg.Output = output
	}

	tags, err := cmd.Flags().GetStringSlice("tags")
	if err != nil {
		return err
	}

	cfg.Tags = append(cfg.Tags, tags...)

	return nil
}

// runPipeline loads the packages named by args, resolves their records and
// renders the generated files. Diagnostics are printed to stderr. With
// render false it stops after resolution.
func runPipeline(cmd *cobra.Command, args []string, render bool) (*pipeline, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := slog.Default()

	analyzer := analyze.NewAnalyzer(analyze.Config{Tags: cfg.Tags, Logger: logger})

	graph, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	analyzer.Apply(cfg)

	resolver := plan.NewResolver(graph, plan.Config{Strict: cfg.Strict, Logger: logger})
	resolved, resolveErr := resolver.Resolve()

	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return nil, err
	}

	printDiagnostics(cmd.ErrOrStderr(), resolved.Diagnostics, !noWarnings)

	if resolveErr != nil {
		return nil, fmt.Errorf("%d error(s) in record declarations", len(resolved.Diagnostics.Errors))
	}

	p := &pipeline{cfg: cfg, graph: graph, plan: resolved}
	if !render {
		return p, nil
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Output:           cfg.Output,
		GenerateComments: cfg.GenerateComments(),
		Logger:           logger,
	})

	p.files, err = generator.Generate(ctx, resolved)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// packageDirs returns the directories of all loaded packages, sorted.
func (p *pipeline) packageDirs() []string {
	dirs := make([]string, 0, len(p.graph.Packages))
	for _, info := range p.graph.Packages {
		if info.Dir != "" {
			dirs = append(dirs, info.Dir)
		}
	}

	sort.Strings(dirs)

	return dirs
}

// printDiagnostics writes diagnostics to w, errors first.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics, warnings bool) {
	for _, d := range diags.All() {
		if d.Severity == diagnostic.SeverityWarning && !warnings {
			continue
		}

		printDiagnostic(w, d)
	}
}

func printDiagnostic(w io.Writer, d diagnostic.Diagnostic) {
	if d.Pos.IsValid() {
		posColor.Fprintf(w, "%s: ", relPath(d.Pos.String()))
	}

	if d.Severity == diagnostic.SeverityError {
		errColor.Fprint(w, "error")
	} else {
		warnColor.Fprint(w, "warning")
	}

	fmt.Fprintf(w, "[%s]: ", d.Code)

	if d.Record != "" {
		fmt.Fprintf(w, "%s", d.Record)

		if d.FieldPath != "" {
			fmt.Fprintf(w, ".%s", d.FieldPath)
		}

		fmt.Fprint(w, ": ")
	}

	fmt.Fprintln(w, d.Message)

	if len(d.Suggestions) > 0 {
		hintColor.Fprintf(w, "  did you mean: %v\n", d.Suggestions)
	}
}

// relPath shortens p relative to the working directory when possible.
func relPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}

	rel, err := filepath.Rel(wd, p)
	if err != nil || filepath.IsAbs(rel) || len(rel) > len(p) {
		return p
	}

	return rel
}
