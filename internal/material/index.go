// Package material resolves texture references from a texture directory and
// attaches surface descriptions to meshes. The pipeline carries the result
// opaquely; only reference resolution and decoding happen here.
package material

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority orders texture formats when several files share a stem.
// Alpha-capable formats win over plain JPEG.
var extPriority = map[string]int{
	".jpg":  1,
	".jpeg": 1,
	".webp": 2,
	".tga":  3,
	".png":  4,
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans texDir and its subdirectories for known texture formats.
func BuildIndex(texDir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if texDir == "" {
		return idx
	}

	filepath.WalkDir(texDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, known := extPriority[ext]
		if !known {
			return nil
		}
		stem := stemOf(path)

		existing, exists := idx.entries[stem]
		if !exists || prio > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Path prefixes and extension are ignored; matching is by lowercase stem.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	path, ok := idx.entries[stemOf(texName)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func stemOf(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
