// Package colorset provides the accent-color and widget-background entry
// points. Each entry point resolves a colorset directory inside a named
// container and writes its Contents.json descriptor as a [mods.Mod].
package colorset

import (
	"context"
	"fmt"
	"log/slog"

	"tools.zach/dev/colorset/internal/catalog"
	"tools.zach/dev/colorset/internal/colors"
	"tools.zach/dev/colorset/internal/mods"
	"tools.zach/dev/colorset/internal/paths"
)

// Options is the input of one entry point.
type Options struct {
	// ContainerName is the directory below the project root that holds the
	// asset catalog, typically the widget target name.
	ContainerName string
	// Color is the light color.
	Color string
	// DarkColor is the optional dark-mode color.
	DarkColor string
}

// Generator holds the collaborators used by the entry points. The zero value
// uses the CSS parser, the atomic filesystem writer and [slog.Default].
type Generator struct {
	Normalizer colors.Normalizer
	Writer     *catalog.Writer
	Logger     *slog.Logger
}

// Default is the generator used by the package-level entry points.
var Default = &Generator{}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// SetColor builds the descriptor for spec and writes it into dir.
func (g *Generator) SetColor(spec catalog.ColorSpec, dir string) error {
	d, err := catalog.Build(spec, g.Normalizer.Normalize)
	if err != nil {
		return err
	}
	if len(d.Colors) == 0 {
		g.logger().Warn("colorset has no colors", "dir", dir)
	}
	if err := g.Writer.Write(dir, d); err != nil {
		return err
	}
	g.logger().Info("wrote colorset", "path", paths.Contents(dir), "variants", len(d.Colors))
	return nil
}

// AccentColor returns a mod that writes
// <root>/<container>/Assets.xcassets/AccentColor.colorset.
func (g *Generator) AccentColor(opts Options) mods.Mod {
	return mods.Mod{
		Name:     "accent color " + opts.ContainerName,
		Platform: mods.PlatformIOS,
		Action: func(_ context.Context, mc mods.Context) (mods.Context, error) {
			dir := paths.Project{Root: mc.ProjectRoot}.Colorset(opts.ContainerName, paths.AccentColorSubpath)
			if err := g.SetColor(catalog.ColorSpec{Color: opts.Color, DarkColor: opts.DarkColor}, dir); err != nil {
				return mc, fmt.Errorf("set accent color: %w", err)
			}
			return mc, nil
		},
	}
}

// WidgetBackgroundColor returns a mod that writes
// <root>/<container>/Assets.xcassets/WidgetBackground.colorset.
func (g *Generator) WidgetBackgroundColor(opts Options) mods.Mod {
	return mods.Mod{
		Name:     "widget background color " + opts.ContainerName,
		Platform: mods.PlatformIOS,
		Action: func(_ context.Context, mc mods.Context) (mods.Context, error) {
			dir := paths.Project{Root: mc.ProjectRoot}.Colorset(opts.ContainerName, paths.WidgetBackgroundSubpath)
			if err := g.SetColor(catalog.ColorSpec{Color: opts.Color, DarkColor: opts.DarkColor}, dir); err != nil {
				return mc, fmt.Errorf("set widget background color: %w", err)
			}
			return mc, nil
		},
	}
}

// AccentColor is [Generator.AccentColor] on [Default].
func AccentColor(opts Options) mods.Mod { return Default.AccentColor(opts) }

// WidgetBackgroundColor is [Generator.WidgetBackgroundColor] on [Default].
func WidgetBackgroundColor(opts Options) mods.Mod { return Default.WidgetBackgroundColor(opts) }

// SetColor is [Generator.SetColor] on [Default].
func SetColor(spec catalog.ColorSpec, dir string) error { return Default.SetColor(spec, dir) }
