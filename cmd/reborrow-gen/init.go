package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"reborrow-generator/internal/common"
	"reborrow-generator/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a starter configuration file",
	Long:  `Write a configuration file (default reborrow.yaml; a .toml name selects TOML)`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileNames[0]
		if arg, ok := common.First(args); ok {
			path = arg
		}

		force, err := cmd.Flags().GetBool("force")
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		cfg := config.Default()
		cfg.Packages = []string{"./..."}

		if err := config.WriteFile(cfg, path); err != nil {
			return err
		}

		okColor.Fprint(cmd.OutOrStdout(), "wrote ")
		fmt.Fprintln(cmd.OutOrStdout(), path)

		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
}
