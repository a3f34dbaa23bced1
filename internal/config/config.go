// Package config loads extraction job files (YAML or JSON) and resolves
// them against CLI flag overrides and defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"handrig-export/internal/mathutil"
	"handrig-export/internal/reweight"
)

// Config holds one extraction job: input/output paths, pruning policy, and
// material references.
type Config struct {
	// Paths
	ScenePath  string `yaml:"scene" json:"scene"`
	OutputPath string `yaml:"output" json:"output"`
	TextureDir string `yaml:"texture_dir" json:"texture_dir"`

	// Pruning policy
	KeepRoot    string `yaml:"keep_root" json:"keep_root"`
	MergeTarget string `yaml:"merge_target" json:"merge_target"`
	MirrorAxis  string `yaml:"mirror_axis" json:"mirror_axis"`

	// Duplicate submeshes removed before any transform.
	DropMeshes []string `yaml:"drop_meshes" json:"drop_meshes"`

	// Vertex-group cleanup after the weight merge: exact names plus
	// substring markers (e.g. ".R" to discard the symmetric side).
	DropGroups        []string `yaml:"drop_groups" json:"drop_groups"`
	DropGroupContains []string `yaml:"drop_group_contains" json:"drop_group_contains"`

	// Material references (all optional).
	MaterialName  string `yaml:"material" json:"material"`
	ColorTexture  string `yaml:"color_texture" json:"color_texture"`
	NormalTexture string `yaml:"normal_texture" json:"normal_texture"`

	// Batch settings
	Workers int `yaml:"workers" json:"workers"`
}

// Load reads a job file. YAML and JSON are both accepted, chosen by
// extension (.json parses as JSON, everything else as YAML).
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Flags holds CLI flag values that override job file settings.
type Flags struct {
	ScenePath   string
	OutputPath  string
	KeepRoot    string
	MergeTarget string
	MirrorAxis  string
	TextureDir  string
	Workers     int
}

// Resolve fills in empty fields from flags, then applies defaults: merge
// target falls back to the keep root, the mirror axis to "x" (matching the
// authored assets), workers to NumCPU, and the output path to the scene
// path with a .rig.json suffix.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override job file
	if flags.ScenePath != "" {
		c.ScenePath = flags.ScenePath
	}
	if flags.OutputPath != "" {
		c.OutputPath = flags.OutputPath
	}
	if flags.KeepRoot != "" {
		c.KeepRoot = flags.KeepRoot
	}
	if flags.MergeTarget != "" {
		c.MergeTarget = flags.MergeTarget
	}
	if flags.MirrorAxis != "" {
		c.MirrorAxis = flags.MirrorAxis
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.MergeTarget == "" {
		c.MergeTarget = c.KeepRoot
	}
	if c.MirrorAxis == "" {
		c.MirrorAxis = "x"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputPath == "" && c.ScenePath != "" {
		base := strings.TrimSuffix(c.ScenePath, filepath.Ext(c.ScenePath))
		c.OutputPath = base + ".rig.json"
	}
}

// Axis parses the configured mirror axis.
func (c *Config) Axis() (mathutil.Axis, error) {
	return mathutil.ParseAxis(c.MirrorAxis)
}

// DropPredicate builds the vertex-group cleanup predicate from the
// configured exact names and substring markers. Returns nil when no policy
// is configured.
func (c *Config) DropPredicate() reweight.DropFunc {
	if len(c.DropGroups) == 0 && len(c.DropGroupContains) == 0 {
		return nil
	}
	exact := make(map[string]bool, len(c.DropGroups))
	for _, n := range c.DropGroups {
		exact[n] = true
	}
	contains := append([]string(nil), c.DropGroupContains...)
	return func(name string) bool {
		if exact[name] {
			return true
		}
		for _, marker := range contains {
			if strings.Contains(name, marker) {
				return true
			}
		}
		return false
	}
}
