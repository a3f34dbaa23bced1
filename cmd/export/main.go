package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"handrig-export/internal/batch"
	"handrig-export/internal/config"
	"handrig-export/internal/export"
)

func main() {
	// CLI flags
	scenePath := flag.String("scene", "", "Path to scene JSON file (overrides job file)")
	outputPath := flag.String("output", "", "Output path (default: <scene>.rig.json)")
	keepRoot := flag.String("keep", "", "Bone whose subtree to keep (e.g. hand.L)")
	mergeTarget := flag.String("merge", "", "Bone absorbing removed-bone weights (default: keep root)")
	mirrorAxis := flag.String("mirror", "", "Mirror axis: x, y, z or none (default: x)")
	textureDir := flag.String("textures", "", "Texture directory for material attachment")
	workers := flag.Int("workers", 0, "Worker goroutines for batch mode (default: NumCPU)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	flags := config.Flags{
		ScenePath:   *scenePath,
		OutputPath:  *outputPath,
		KeepRoot:    *keepRoot,
		MergeTarget: *mergeTarget,
		MirrorAxis:  *mirrorAxis,
		TextureDir:  *textureDir,
		Workers:     *workers,
	}

	// Positional args are job files; none means flags describe a single job.
	jobFiles := flag.Args()
	var jobs []config.Config
	if len(jobFiles) == 0 {
		var cfg config.Config
		cfg.Resolve(flags)
		if cfg.ScenePath == "" || cfg.KeepRoot == "" {
			fmt.Fprintln(os.Stderr, "Error: need -scene and -keep, or one or more job files.")
			flag.Usage()
			os.Exit(2)
		}
		jobs = append(jobs, cfg)
	} else {
		for _, path := range jobFiles {
			cfg, err := config.Load(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading job %s: %v\n", path, err)
				os.Exit(1)
			}
			cfg.Resolve(flags)
			jobs = append(jobs, cfg)
		}
	}

	fmt.Printf("Hand rig export: %d job(s), workers: %d\n", len(jobs), jobs[0].Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Options{
		Exporter: export.JSONExporter{},
		Workers:  jobs[0].Workers,
		Log:      log,
	}, jobs)

	failed := 0
	for _, r := range results {
		if r.Success {
			fmt.Printf("OK   %s -> %s (%d bytes)\n", r.Scene, r.Output, r.Bytes)
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", r.Scene, r.Error)
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs: %d ok, %d failed\n", time.Since(start).Seconds(), len(results)-failed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}
