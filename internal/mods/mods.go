// Package mods schedules build-time project mutations.
//
// A [Mod] is a named action bound to a platform. A [Pipeline] runs its mods
// in registration order against a [Context] carrying the project root; each
// mod receives the context returned by the one before it.
package mods

import (
	"context"
	"fmt"
	"log/slog"
)

// PlatformIOS is the platform colorset mods register against.
const PlatformIOS = "ios"

// Context is the project state handed from mod to mod.
type Context struct {
	// ProjectRoot is the absolute path of the project being modified.
	ProjectRoot string
	// Platform selects which mods run. Empty runs every mod.
	Platform string
}

// Action mutates the project and returns the context for the next mod.
type Action func(ctx context.Context, mc Context) (Context, error)

// Mod is one scheduled mutation.
type Mod struct {
	// Name labels the mod in logs and errors.
	Name string
	// Platform is the platform phase this mod belongs to.
	Platform string
	// Action performs the mutation.
	Action Action
}

// Pipeline runs mods in order. The zero value is an empty pipeline.
type Pipeline struct {
	mods []Mod
}

// Add appends mods to the pipeline.
func (p *Pipeline) Add(m ...Mod) *Pipeline {
	p.mods = append(p.mods, m...)
	return p
}

// Len reports the number of registered mods.
func (p *Pipeline) Len() int { return len(p.mods) }

// Run invokes each mod whose platform matches mc.Platform. It stops at the
// first failing mod and returns its error wrapped with the mod name. ctx is
// checked between mods; a running mod is never interrupted.
func (p *Pipeline) Run(ctx context.Context, mc Context) (Context, error) {
	for _, m := range p.mods {
		if err := ctx.Err(); err != nil {
			return mc, err
		}
		if mc.Platform != "" && m.Platform != "" && m.Platform != mc.Platform {
			slog.Debug("skipping mod for other platform", "mod", m.Name, "platform", m.Platform)
			continue
		}
		slog.Debug("running mod", "mod", m.Name, "root", mc.ProjectRoot)
		next, err := m.Action(ctx, mc)
		if err != nil {
			return mc, fmt.Errorf("%s: %w", m.Name, err)
		}
		mc = next
	}
	return mc, nil
}
