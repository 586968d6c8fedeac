package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"tools.zach/dev/colorset/internal/config"
	"tools.zach/dev/colorset/internal/logger"
	"tools.zach/dev/colorset/internal/paths"
	"tools.zach/dev/colorset/internal/remote"
)

// app carries the global flags and the logger shared by every subcommand.
type app struct {
	projectRoot string
	logLevel    string
	logCloser   io.Closer
}

func (a *app) project() paths.Project {
	return paths.Project{Root: a.projectRoot}
}

// configureLogging installs the default logger. The --log-level flag wins
// over the manifest; a manifest log file is resolved against the project
// root.
func (a *app) configureLogging(cmd *cobra.Command, lc config.LogConfig) error {
	levelName := lc.Level
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}

	file := lc.File
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(a.projectRoot, file)
	}

	a.closeLog()
	l, closer := logger.New(logger.Options{
		Console:   cmd.ErrOrStderr(),
		Level:     level,
		File:      file,
		MaxSizeMB: lc.MaxSizeMB,
	})
	a.logCloser = closer
	slog.SetDefault(l)
	return nil
}

func (a *app) closeLog() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// loadManifest reads the manifest from source: an http(s) URL, a file path,
// or the project's colorset.toml when source is empty.
func (a *app) loadManifest(ctx context.Context, source string) (*config.Config, error) {
	if remote.IsURL(source) {
		data, err := remote.Fetch(ctx, source, a.project().RemoteCache())
		if err != nil {
			if !remote.IsStale(err) {
				return nil, fmt.Errorf("load config: %w", err)
			}
			slog.Warn("remote config unavailable, using cache", "error", err)
		}
		cfg, _, err := config.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return cfg, nil
	}

	path := source
	if path == "" {
		path = a.project().Config()
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no manifest at %s (run colorset init)", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ///////////////////////////////////////////////
// Root Command
// ///////////////////////////////////////////////

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colorset",
		Short: "Generate Xcode accent and widget background colorsets",
		Long: `colorset writes AccentColor.colorset and WidgetBackground.colorset
asset catalog entries for iOS widget targets from CSS color strings.

Quick start:
  colorset init                                    # Write colorset.toml
  colorset generate                                # Write every colorset it lists
  colorset accent --container MyWidget --color red # One-off accent color`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(a.projectRoot)
			if err != nil {
				return fmt.Errorf("resolve project root: %w", err)
			}
			a.projectRoot = root
			return a.configureLogging(cmd, config.DefaultConfig().Log)
		},
	}

	cmd.PersistentFlags().StringVar(&a.projectRoot, "project-root", ".", "project directory containing the widget containers")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, fail (default from manifest)")

	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newAccentCmd(a))
	cmd.AddCommand(newBackgroundCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.closeLog()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
