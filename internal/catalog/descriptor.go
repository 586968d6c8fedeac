// Package catalog builds and writes asset-catalog colorset descriptors.
//
// A descriptor is the Contents.json file inside a ".colorset" directory. It
// lists one variant per appearance: an unconditional light entry followed by
// an optional entry tagged with the dark luminosity appearance.
package catalog

import (
	"tools.zach/dev/colorset/internal/colors"
)

// Descriptor constants.
const (
	IdiomUniversal      = "universal"
	AppearanceLuminance = "luminosity"
	AppearanceDark      = "dark"
	InfoVersion         = 1
	InfoAuthor          = "expo"
)

// DarkAppearance is the only appearance condition written to descriptors.
// Treat it as read-only.
var DarkAppearance = Appearance{Appearance: AppearanceLuminance, Value: AppearanceDark}

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// ColorSpec is the input for one colorset. An empty field means "not
// supplied".
type ColorSpec struct {
	// Color is the light, unconditional color.
	Color string
	// DarkColor is the optional dark-mode override.
	DarkColor string
}

// Appearance is a trait condition that selects a variant.
type Appearance struct {
	Appearance string `json:"appearance"`
	Value      string `json:"value"`
}

// Variant is one entry of the descriptor's colors list. A variant without
// appearances applies unconditionally.
type Variant struct {
	Appearances []Appearance           `json:"appearances,omitempty"`
	Color       colors.NormalizedColor `json:"color"`
	Idiom       string                 `json:"idiom"`
}

// Info identifies the descriptor format and its generator.
type Info struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

// Descriptor is the full Contents.json document.
type Descriptor struct {
	Colors []Variant `json:"colors"`
	Info   Info      `json:"info"`
}

// NormalizeFunc converts a color string into a normalized color.
type NormalizeFunc func(s string) (colors.NormalizedColor, error)

// ///////////////////////////////////////////////
// Build
// ///////////////////////////////////////////////

// Build assembles a descriptor from spec. The light variant, when present,
// always precedes the dark variant. A spec with neither color yields an empty
// list, not an error. A nil normalize uses [colors.Normalize].
func Build(spec ColorSpec, normalize NormalizeFunc) (*Descriptor, error) {
	if normalize == nil {
		normalize = colors.Normalize
	}

	variants := make([]Variant, 0, 2)
	if spec.Color != "" {
		c, err := normalize(spec.Color)
		if err != nil {
			return nil, err
		}
		variants = append(variants, Variant{Color: c, Idiom: IdiomUniversal})
	}
	if spec.DarkColor != "" {
		c, err := normalize(spec.DarkColor)
		if err != nil {
			return nil, err
		}
		variants = append(variants, Variant{
			Appearances: []Appearance{DarkAppearance},
			Color:       c,
			Idiom:       IdiomUniversal,
		})
	}

	return &Descriptor{
		Colors: variants,
		Info:   Info{Version: InfoVersion, Author: InfoAuthor},
	}, nil
}
