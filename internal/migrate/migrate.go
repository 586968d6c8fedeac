// Package migrate upgrades manifest bytes through a sequence of schema
// versions before they are decoded.
package migrate

import (
	"fmt"
	"log/slog"
	"sort"
)

// ///////////////////////////////////////////////
// Types
// ///////////////////////////////////////////////

// Migration upgrades raw data from the prior schema version to Version.
type Migration struct {
	// Version is the schema version this migration produces.
	Version int
	// Description is a short label for log output.
	Description string
	// Upgrade transforms data from the prior version to [Migration.Version].
	Upgrade func(data []byte) ([]byte, error)
}

// ///////////////////////////////////////////////
// Public API
// ///////////////////////////////////////////////

// Run applies migrations in version order, skipping any at or below
// fromVersion. Returns the transformed data and the final version reached.
// On error the returned version is the last one applied successfully.
func Run(data []byte, fromVersion int, migrations []Migration) ([]byte, int, error) {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	version := fromVersion
	for _, m := range sorted {
		if version >= m.Version {
			continue
		}
		slog.Info("applying migration", "version", m.Version, "description", m.Description)
		out, err := m.Upgrade(data)
		if err != nil {
			return nil, version, fmt.Errorf("migration to v%d failed: %w", m.Version, err)
		}
		data = out
		version = m.Version
	}
	return data, version, nil
}

// NeedsMigration reports whether data at fileVersion has any pending
// migration below or at currentVersion.
func NeedsMigration(fileVersion, currentVersion int, migrations []Migration) bool {
	if fileVersion >= currentVersion {
		return false
	}
	for _, m := range migrations {
		if fileVersion < m.Version && m.Version <= currentVersion {
			return true
		}
	}
	return false
}
