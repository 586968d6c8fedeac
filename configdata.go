// Package colorset provides embedded assets for the colorset tool.
//
// The root package exists solely to embed [colorset.default.toml] via
// [DefaultConfigTOML]. The init command writes it into a project as the
// starting manifest.
package colorset

import _ "embed"

// DefaultConfigTOML holds the raw bytes of colorset.default.toml, embedded at
// build time. Regenerate it with go generate ./internal/config.
//
//go:embed colorset.default.toml
var DefaultConfigTOML []byte
