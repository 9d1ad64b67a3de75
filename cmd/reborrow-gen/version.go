package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reborrow-generator/internal/common"
	"reborrow-generator/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show reborrow-gen build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		color.New(color.FgYellow, color.Bold).Fprint(out, "reborrow-gen ")
		fmt.Fprintln(out, valueOrUnknown(version.Version))

		full, err := cmd.Flags().GetBool("full")
		if err != nil {
			return err
		}

		if full {
			fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
			fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
		}

		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("full", false, "include commit and build date")
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return common.UnknownStr
	}

	return s
}
