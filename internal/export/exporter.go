// Package export defines the sink the pipeline hands finished assets to.
// The binary container format of the production exporter lives outside this
// repository; the pipeline only needs success/failure and the written size.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"handrig-export/internal/rig"
	"handrig-export/internal/scene"
)

// Result reports where an asset landed and how large it is.
type Result struct {
	Path  string
	Bytes int64
}

// Exporter serializes a finished asset. The pipeline treats it as opaque.
type Exporter interface {
	Export(path string, asset *rig.Asset) (Result, error)
}

// JSONExporter writes the asset as an indented scene document. It is the
// default sink for the CLI and doubles as a debugging artifact format.
type JSONExporter struct{}

func (JSONExporter) Export(path string, asset *rig.Asset) (Result, error) {
	doc := scene.FromAsset(asset)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("export: encode %s: %w", path, err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Result{}, fmt.Errorf("export: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Result{}, fmt.Errorf("export: write %s: %w", path, err)
	}
	return Result{Path: path, Bytes: int64(len(data))}, nil
}
