package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/colorset/internal/migrate"
)

func init() {
	migrate.Config.Register(migrate.Migration{
		Version:     2,
		Description: "rename targets.widget_name to targets.container",
		Upgrade:     renameWidgetName,
	})
}

// renameWidgetName rewrites v1 manifests, where each target named its
// directory with widget_name, to the v2 container key.
func renameWidgetName(data []byte) ([]byte, error) {
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode v1 config: %w", err)
	}

	// [[targets]] decodes as []map[string]any; an inline array of tables
	// decodes as []any.
	switch targets := raw["targets"].(type) {
	case []map[string]any:
		for _, t := range targets {
			renameTargetKey(t)
		}
	case []any:
		for _, v := range targets {
			if t, ok := v.(map[string]any); ok {
				renameTargetKey(t)
			}
		}
	}
	raw["version"] = 2

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return nil, fmt.Errorf("encode v2 config: %w", err)
	}
	return buf.Bytes(), nil
}

func renameTargetKey(t map[string]any) {
	name, ok := t["widget_name"]
	if !ok {
		return
	}
	if _, exists := t["container"]; !exists {
		t["container"] = name
	}
	delete(t, "widget_name")
}
