package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reborrow-generator/internal/gen"
)

var checkCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Verify generated files are up to date",
	Long:  `Run generation without writing and fail when a generated file is missing, stale or orphaned`,
	RunE:  runCheck,
}

func init() {
	addPipelineFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := runPipeline(cmd, args, true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bad := 0

	for _, f := range p.files {
		stale, err := gen.Stale(f)
		if err != nil {
			return err
		}

		if stale {
			bad++

			errColor.Fprint(out, "stale ")
			fmt.Fprintln(out, relPath(f.Path()))
		}
	}

	orphans, err := gen.Orphans(p.packageDirs(), p.cfg.Output, p.files)
	if err != nil {
		return err
	}

	for _, o := range orphans {
		bad++

		errColor.Fprint(out, "orphan ")
		fmt.Fprintln(out, relPath(o))
	}

	if bad > 0 {
		return fmt.Errorf("%d generated file(s) out of date; run reborrow-gen generate", bad)
	}

	okColor.Fprintf(out, "%d file(s) up to date\n", len(p.files))

	return nil
}
