package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"tools.zach/dev/colorset/internal/colorset"
	"tools.zach/dev/colorset/internal/mods"
	"tools.zach/dev/colorset/internal/paths"
)

func newAccentCmd(a *app) *cobra.Command {
	return newColorCmd(a, colorCmdSpec{
		use:     "accent",
		short:   "Write <container>/Assets.xcassets/AccentColor.colorset",
		subpath: paths.AccentColorSubpath,
		mod:     colorset.AccentColor,
	})
}

func newBackgroundCmd(a *app) *cobra.Command {
	return newColorCmd(a, colorCmdSpec{
		use:     "background",
		short:   "Write <container>/Assets.xcassets/WidgetBackground.colorset",
		subpath: paths.WidgetBackgroundSubpath,
		mod:     colorset.WidgetBackgroundColor,
	})
}

type colorCmdSpec struct {
	use     string
	short   string
	subpath string
	mod     func(colorset.Options) mods.Mod
}

// newColorCmd builds a one-off command that runs a single entry point
// without a manifest.
func newColorCmd(a *app, spec colorCmdSpec) *cobra.Command {
	var opts colorset.Options
	cmd := &cobra.Command{
		Use:   spec.use,
		Short: spec.short,
		Long: spec.short + ".\n\n" +
			"Colors accept any CSS syntax: hex, rgb(), hsl(), or a named color.\n\n" +
			"Example:\n" +
			"  colorset " + spec.use + " --container MyWidget --color '#FF0000' --dark-color black",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !filepath.IsLocal(opts.ContainerName) {
				return fmt.Errorf("invalid container %q: must be a relative path inside the project", opts.ContainerName)
			}
			p := (&mods.Pipeline{}).Add(spec.mod(opts))
			if _, err := p.Run(cmd.Context(), mods.Context{ProjectRoot: a.projectRoot, Platform: mods.PlatformIOS}); err != nil {
				return err
			}
			dir := a.project().Colorset(opts.ContainerName, spec.subpath)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", paths.Contents(dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.ContainerName, "container", "", "directory below the project root (usually the widget target name)")
	cmd.Flags().StringVar(&opts.Color, "color", "", "light color")
	cmd.Flags().StringVar(&opts.DarkColor, "dark-color", "", "optional dark-mode color")
	_ = cmd.MarkFlagRequired("container")
	return cmd
}
