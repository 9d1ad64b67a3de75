package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reborrow-generator/internal/gen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [packages]",
	Short: "Write the generated methods of every record",
	Long: `Load the packages (default: the config's packages, or ./...), resolve every
record and write one generated file into each package holding records`,
	RunE: runGenerate,
}

func init() {
	addPipelineFlags(generateCmd)
	generateCmd.Flags().Bool("dry-run", false, "print the generated files instead of writing them")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	p, err := runPipeline(cmd, args, true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if dryRun {
		for _, f := range p.files {
			fmt.Fprintf(out, "// %s\n%s\n", relPath(f.Path()), f.Content)
		}

		return nil
	}

	written, err := gen.WriteFiles(p.files)
	for _, path := range written {
		okColor.Fprint(out, "wrote ")
		fmt.Fprintln(out, relPath(path))
	}

	if err != nil {
		return err
	}

	orphans, err := gen.Orphans(p.packageDirs(), p.cfg.Output, p.files)
	if err != nil {
		return err
	}

	for _, o := range orphans {
		warnColor.Fprint(cmd.ErrOrStderr(), "warning")
		fmt.Fprintf(cmd.ErrOrStderr(), ": %s no longer has records; remove it\n", relPath(o))
	}

	if len(written) == 0 {
		fmt.Fprintf(out, "%d file(s) up to date\n", len(p.files))
	}

	return nil
}
