package config

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated colorset.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "targets.accent.color")
// to their [FieldDoc] entries. Array-of-table fields use the table name
// without an index.
var ConfigDocs = map[string]FieldDoc{
	// ── Root ──────────────────────────────────────────────────────
	"version": {
		Comment: "Manifest schema version. Do not edit.",
	},

	// ── Log ──────────────────────────────────────────────────────
	"log.level": {
		Comment: "Minimum log level: trace, debug, info, warn, error, fail.\nOverridden by --log-level.",
		Alternatives: []string{
			`level = "debug"`,
		},
	},
	"log.file": {
		Comment: "Optional log file, relative to the project root. Rotated by size.\nOmit to log to stderr only.",
		Alternatives: []string{
			`file = ".colorset/colorset.log"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Rotate the log file once it reaches this many megabytes.",
	},

	// ── Targets ──────────────────────────────────────────────────
	"targets.container": {
		Comment: "Directory below the project root that receives Assets.xcassets.\nGlob patterns such as \"*Widget\" or \"targets/**/Widget\" expand to every matching directory.",
		Alternatives: []string{
			`container = "*Widget"`,
		},
	},
	"targets.accent.color": {
		Comment: "AccentColor.colorset. Any CSS color: hex, rgb(), hsl(), or a named color.",
		Alternatives: []string{
			`color = "rebeccapurple"`,
			`color = "rgba(255, 0, 0, 0.5)"`,
		},
	},
	"targets.accent.dark_color": {
		Comment: "Optional dark-mode variant.",
	},
	"targets.background.color": {
		Comment: "WidgetBackground.colorset. Same color syntax as accent.",
	},
	"targets.background.dark_color": {
		Comment: "Optional dark-mode variant.",
	},
}
