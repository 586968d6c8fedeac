// Package colors converts CSS color strings into the normalized sRGB records
// stored in asset-catalog descriptors.
//
// Parsing is delegated to [csscolorparser.Parse], which accepts named colors,
// hex forms (#rgb, #rgba, #rrggbb, #rrggbbaa) and the rgb(), hsl() and hwb()
// functional notations. The normalizer itself never clamps or rounds: it only
// checks that the parser kept its promise of components in [0, 1].
package colors

import (
	"errors"
	"fmt"
	"math"

	"github.com/mazznoer/csscolorparser"
)

// SpaceSRGB is the only color space written to descriptors.
const SpaceSRGB = "srgb"

// ErrOutOfRange reports a parser result with a component outside [0, 1] or NaN.
var ErrOutOfRange = errors.New("component out of range [0, 1]")

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Components holds unit-interval channel values. Field order is the
// serialized key order.
type Components struct {
	Alpha float64 `json:"alpha"`
	Blue  float64 `json:"blue"`
	Green float64 `json:"green"`
	Red   float64 `json:"red"`
}

// NormalizedColor is the color record of a descriptor variant.
type NormalizedColor struct {
	ColorSpace string     `json:"color-space"`
	Components Components `json:"components"`
}

// RGBA is what a [ParseFunc] returns: channels in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// ParseFunc interprets a CSS color string.
type ParseFunc func(s string) (RGBA, error)

// ParseError is returned when a color string cannot be interpreted.
type ParseError struct {
	// Input is the rejected color string, unmodified.
	Input string
	// Err is the parser's error or [ErrOutOfRange].
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid color %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ///////////////////////////////////////////////
// Normalizer
// ///////////////////////////////////////////////

// Normalizer converts color strings using Parse. The zero value uses
// [ParseCSS].
type Normalizer struct {
	Parse ParseFunc
}

// Normalize converts s into an sRGB [NormalizedColor].
func (n Normalizer) Normalize(s string) (NormalizedColor, error) {
	parse := n.Parse
	if parse == nil {
		parse = ParseCSS
	}
	c, err := parse(s)
	if err != nil {
		return NormalizedColor{}, &ParseError{Input: s, Err: err}
	}
	for _, v := range [...]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return NormalizedColor{}, &ParseError{Input: s, Err: ErrOutOfRange}
		}
	}
	return NormalizedColor{
		ColorSpace: SpaceSRGB,
		Components: Components{Alpha: c.A, Blue: c.B, Green: c.G, Red: c.R},
	}, nil
}

// Normalize converts s with the default CSS parser.
func Normalize(s string) (NormalizedColor, error) {
	return Normalizer{}.Normalize(s)
}

// ParseCSS is the default [ParseFunc], backed by csscolorparser.
func ParseCSS(s string) (RGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return RGBA{}, err
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}
