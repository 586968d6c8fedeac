// Package paths centralizes file and directory names used across the project.
// Asset-catalog names and manifest file names are defined here as the single
// source of truth.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Project file names.
const (
	ConfigFile      = "colorset.toml"
	ConfigBackupExt = ".bak"
	CacheDir        = ".colorset"
	RemoteCacheFile = "remote-config.toml"
)

// Asset catalog names.
const (
	ContentsFile     = "Contents.json"
	AssetCatalog     = "Assets.xcassets"
	AccentColorSet   = "AccentColor.colorset"
	WidgetBackground = "WidgetBackground.colorset"
)

// Destination subpaths below a container directory.
var (
	AccentColorSubpath      = filepath.Join(AssetCatalog, AccentColorSet)
	WidgetBackgroundSubpath = filepath.Join(AssetCatalog, WidgetBackground)
)

// ///////////////////////////////////////////////
// Project
// ///////////////////////////////////////////////

// Project provides path construction methods rooted at a project directory.
type Project struct {
	Root string
}

// Config returns the full path to the project manifest.
func (p Project) Config() string { return filepath.Join(p.Root, ConfigFile) }

// Cache returns the full path to the per-project cache directory.
func (p Project) Cache() string { return filepath.Join(p.Root, CacheDir) }

// RemoteCache returns the full path to the cached copy of a remote manifest.
func (p Project) RemoteCache() string { return filepath.Join(p.Cache(), RemoteCacheFile) }

// Colorset joins a container and a colorset subpath, for example
// Colorset("MyWidget", AccentColorSubpath).
func (p Project) Colorset(container, subpath string) string {
	return filepath.Join(p.Root, container, subpath)
}

// Contents returns the descriptor path inside a colorset directory.
func Contents(colorsetDir string) string {
	return filepath.Join(colorsetDir, ContentsFile)
}
