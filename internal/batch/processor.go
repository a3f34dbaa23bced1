// Package batch runs many extraction jobs through independent pipeline
// runs on a worker pool. Each job loads, transforms, and exports its own
// asset; no skeleton or mesh state is shared between workers.
package batch

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"handrig-export/internal/config"
	"handrig-export/internal/export"
	"handrig-export/internal/material"
	"handrig-export/internal/pipeline"
	"handrig-export/internal/scene"
)

// Options holds shared resources for a batch run.
type Options struct {
	Exporter export.Exporter
	Workers  int
	Log      *slog.Logger
}

// Result holds the outcome of processing one job.
type Result struct {
	Scene   string
	Output  string
	Success bool
	Bytes   int64
	Error   string
}

// Run processes all jobs using a worker pool and reports per-job results in
// input order.
func Run(opts Options, jobs []config.Config) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("batch progress", "done", p, "total", total, "rate", fmt.Sprintf("%.1f/sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(opts, jobs[idx], log)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(opts Options, cfg config.Config, log *slog.Logger) Result {
	res := Result{Scene: cfg.ScenePath, Output: cfg.OutputPath}

	axis, err := cfg.Axis()
	if err != nil {
		res.Error = err.Error()
		return res
	}

	asset, err := scene.Load(cfg.ScenePath)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	// Texture resolution is per-job: texture dirs may differ between jobs.
	textures := material.NewCache(material.BuildIndex(cfg.TextureDir))

	job := pipeline.Job{
		KeepRoot:      cfg.KeepRoot,
		MergeTarget:   cfg.MergeTarget,
		MirrorAxis:    axis,
		DropMeshes:    cfg.DropMeshes,
		DropGroup:     cfg.DropPredicate(),
		MaterialName:  cfg.MaterialName,
		ColorTexture:  cfg.ColorTexture,
		NormalTexture: cfg.NormalTexture,
	}

	out, err := pipeline.Run(asset, job, textures, opts.Exporter, cfg.OutputPath, log)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	res.Bytes = out.Export.Bytes
	return res
}
