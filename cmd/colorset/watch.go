package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"tools.zach/dev/colorset/internal/colorset"
	"tools.zach/dev/colorset/internal/remote"
	"tools.zach/dev/colorset/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate colorsets whenever the manifest changes",
		Long: "Generate once, then regenerate every time colorset.toml is saved.\n" +
			"Errors are logged and watching continues. Stop with Ctrl-C.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote.IsURL(source) {
				return fmt.Errorf("watch needs a local manifest, got %s", source)
			}
			path := source
			if path == "" {
				path = a.project().Config()
			}

			w, err := watch.New(path)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx := cmd.Context()
			regenerate := func() {
				cfg, err := a.loadManifest(ctx, path)
				if err != nil {
					slog.Error("reload manifest failed", "error", err)
					return
				}
				if err := a.configureLogging(cmd, cfg.Log); err != nil {
					slog.Error("reconfigure logging failed", "error", err)
				}
				n, err := generate(ctx, a.projectRoot, cfg, colorset.Default)
				if err != nil {
					slog.Error("generate failed", "error", err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "generated %d colorset(s)\n", n)
			}

			regenerate()
			slog.Info("watching manifest", "path", w.Path(), "polling", w.Polling())
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-w.Events():
					regenerate()
				}
			}
		},
	}
	cmd.Flags().StringVar(&source, "config", "", "manifest path (default <project-root>/colorset.toml)")
	return cmd
}
