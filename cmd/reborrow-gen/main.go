// Package main provides the CLI entrypoint for reborrow-gen.
//
// reborrow-gen reads //reborrow: directives from Go packages and writes the
// IntoConst, ReborrowMut, Reborrow, AsGeneralizedMut and AsGeneralizedRef
// methods of each record into a reborrow_gen.go file per package.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reborrow-generator/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "reborrow-gen",
	Short:         "Generate view narrowing methods for Go record types",
	Long:          `reborrow-gen generates IntoConst, ReborrowMut and Reborrow for struct types marked with //reborrow: directives`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		colorFlag, err := cmd.Flags().GetString("color")
		if err != nil {
			return err
		}

		return setupColor(colorFlag)
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "configuration file (default: reborrow.yaml or reborrow.toml found upwards)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupColor applies the --color flag to fatih/color.
func setupColor(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return errUnknownColor(mode)
	}

	return nil
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
