package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	defaults "tools.zach/dev/colorset"
	"tools.zach/dev/colorset/internal/atomicfile"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a documented colorset.toml into the project root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.project().Config()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(a.projectRoot, 0o755); err != nil {
				return fmt.Errorf("create project root: %w", err)
			}
			if err := atomicfile.Write(path, defaults.DefaultConfigTOML, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the colorset version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colorset %s\n", resolveVersion())
		},
	}
}
