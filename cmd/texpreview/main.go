package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"handrig-export/internal/material"
)

func main() {
	texDir := flag.String("textures", ".", "Texture directory to index")
	outDir := flag.String("out", "previews", "Output directory for WebP thumbnails")
	size := flag.Int("size", 128, "Thumbnail edge length in pixels")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "usage: texpreview -textures <dir> <texture name>...")
		os.Exit(2)
	}

	idx := material.BuildIndex(*texDir)
	cache := material.NewCache(idx)
	fmt.Printf("Textures: %d indexed under %s\n", idx.Len(), *texDir)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	errors := 0
	for _, name := range names {
		if err := writePreview(cache, name, *outDir, *size); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
		}
	}
	if errors > 0 {
		os.Exit(1)
	}
}

func writePreview(cache *material.Cache, name, outDir string, size int) error {
	img := cache.Resolve(name)
	if img == nil {
		return fmt.Errorf("texture %q not found or undecodable", name)
	}

	thumb := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Src, nil)

	dst := filepath.Join(outDir, stem(name)+".webp")
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, thumb, nil); err != nil {
		return fmt.Errorf("webp encode %s: %w", dst, err)
	}

	b := img.Bounds()
	fmt.Printf("OK  %s (%dx%d) -> %s\n", name, b.Dx(), b.Dy(), dst)
	return nil
}

func stem(name string) string {
	base := filepath.Base(name)
	return base[:len(base)-len(filepath.Ext(base))]
}
