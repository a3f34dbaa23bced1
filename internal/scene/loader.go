package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"handrig-export/internal/rig"
)

// Load reads a scene document from path and returns the validated asset.
func Load(path string) (*rig.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	asset := doc.ToAsset()
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return asset, nil
}
