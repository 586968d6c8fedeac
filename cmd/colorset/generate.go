package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"tools.zach/dev/colorset/internal/colorset"
	"tools.zach/dev/colorset/internal/config"
	"tools.zach/dev/colorset/internal/mods"
)

func newGenerateCmd(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write every colorset listed in the manifest",
		Long: "Write the AccentColor and WidgetBackground colorsets for every target in\n" +
			"colorset.toml. Targets are written concurrently.\n\n" +
			"Examples:\n" +
			"  colorset generate\n" +
			"  colorset generate --config https://example.com/brand/colorset.toml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadManifest(cmd.Context(), source)
			if err != nil {
				return err
			}
			if err := a.configureLogging(cmd, cfg.Log); err != nil {
				return err
			}
			n, err := generate(cmd.Context(), a.projectRoot, cfg, colorset.Default)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %d colorset(s)\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "config", "", "manifest path or http(s) URL (default <project-root>/colorset.toml)")
	return cmd
}

// job is the pipeline for one resolved container.
type job struct {
	container string
	mods      []mods.Mod
}

// plan expands every target's container and groups the entry points per
// container, in manifest order. The same colorset configured twice for one
// container is an error.
func plan(projectRoot string, targets []config.Target, gen *colorset.Generator) ([]job, error) {
	var jobs []job
	index := map[string]int{}
	seen := map[string]bool{}

	add := func(container, kind string, m mods.Mod) error {
		key := container + "\x00" + kind
		if seen[key] {
			return fmt.Errorf("container %s: %s configured by more than one target", container, kind)
		}
		seen[key] = true
		i, ok := index[container]
		if !ok {
			i = len(jobs)
			index[container] = i
			jobs = append(jobs, job{container: container})
		}
		jobs[i].mods = append(jobs[i].mods, m)
		return nil
	}

	for _, t := range targets {
		containers, err := t.Containers(projectRoot)
		if err != nil {
			return nil, err
		}
		for _, c := range containers {
			if t.Accent != nil {
				opts := colorset.Options{ContainerName: c, Color: t.Accent.Color, DarkColor: t.Accent.DarkColor}
				if err := add(c, "accent", gen.AccentColor(opts)); err != nil {
					return nil, err
				}
			}
			if t.Background != nil {
				opts := colorset.Options{ContainerName: c, Color: t.Background.Color, DarkColor: t.Background.DarkColor}
				if err := add(c, "background", gen.WidgetBackgroundColor(opts)); err != nil {
					return nil, err
				}
			}
		}
	}
	return jobs, nil
}

// generate runs one pipeline per container concurrently and returns how many
// colorsets were written. The first failure cancels the remaining pipelines
// between mods.
func generate(ctx context.Context, projectRoot string, cfg *config.Config, gen *colorset.Generator) (int, error) {
	jobs, err := plan(projectRoot, cfg.Targets, gen)
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		slog.Warn("manifest has no targets")
		return 0, nil
	}

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			p := (&mods.Pipeline{}).Add(j.mods...)
			mc := mods.Context{ProjectRoot: projectRoot, Platform: mods.PlatformIOS}
			if _, err := p.Run(gctx, mc); err != nil {
				return fmt.Errorf("container %s: %w", j.container, err)
			}
			written.Add(int64(len(j.mods)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}
