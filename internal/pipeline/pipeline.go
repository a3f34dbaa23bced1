// Package pipeline sequences the hand-rig extraction stages over one asset:
// discard duplicate meshes, bake object transforms, prune the skeleton to
// the kept subtree, fold removed-bone weights into the new root, drop dead
// vertex groups, rebase skeleton and meshes to the origin, attach materials,
// and hand the result to the exporter. Each run owns its asset exclusively;
// the first stage error aborts the run and the exporter is never invoked on
// a failed run.
package pipeline

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"handrig-export/internal/export"
	"handrig-export/internal/extract"
	"handrig-export/internal/material"
	"handrig-export/internal/mathutil"
	"handrig-export/internal/rebase"
	"handrig-export/internal/reweight"
	"handrig-export/internal/rig"
)

// Job describes one extraction run over a loaded asset.
type Job struct {
	// KeepRoot names the bone whose subtree survives and becomes the root.
	KeepRoot string
	// MergeTarget absorbs the weights of removed bones. Empty means KeepRoot.
	MergeTarget string
	// MirrorAxis is applied to bones and vertices during rebase.
	MirrorAxis mathutil.Axis
	// DropMeshes names duplicate/alternate submeshes discarded before any
	// transform.
	DropMeshes []string
	// DropGroup decides which vertex groups the cleanup pass removes after
	// the weight merge. May be nil.
	DropGroup reweight.DropFunc
	// MaterialName plus texture names drive the material attachment stage.
	// All optional.
	MaterialName  string
	ColorTexture  string
	NormalTexture string
}

// Result summarizes a successful run.
type Result struct {
	BonesKept    int
	BonesRemoved int
	Offset       r3.Vec
	Export       export.Result
}

// Run executes the fixed stage order over asset, exporting to outPath.
// The asset is mutated in place and must not be reused after a failure.
func Run(asset *rig.Asset, job Job, textures material.Resolver, exp export.Exporter, outPath string, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if job.KeepRoot == "" {
		return nil, fmt.Errorf("pipeline: keep root bone not specified")
	}
	mergeTarget := job.MergeTarget
	if mergeTarget == "" {
		mergeTarget = job.KeepRoot
	}

	discardMeshes(asset, job.DropMeshes, log)
	bakeTransforms(asset)

	pruned, err := extract.Subtree(asset.Skeleton, job.KeepRoot)
	if err != nil {
		return nil, fmt.Errorf("pipeline: extract: %w", err)
	}
	keep := extract.Keep(asset.Skeleton, job.KeepRoot)
	removed := extract.Removed(asset.Skeleton, keep)
	if !keep[mergeTarget] {
		return nil, fmt.Errorf("pipeline: merge target %q not in kept subtree: %w", mergeTarget, rig.ErrInvalidMergeTarget)
	}
	asset.Skeleton = pruned
	log.Debug("skeleton pruned", "kept", len(keep), "removed", len(removed), "root", job.KeepRoot)

	for i := range asset.Meshes {
		m := &asset.Meshes[i]
		if err := reweight.Merge(m.Weights, removed, mergeTarget); err != nil {
			return nil, fmt.Errorf("pipeline: reweight mesh %q: %w", m.Name, err)
		}
		if dropped := reweight.DropGroups(m.Weights, job.DropGroup); len(dropped) > 0 {
			log.Debug("vertex groups dropped", "mesh", m.Name, "count", len(dropped))
		}
	}

	offset, err := rebase.Rebase(&asset.Skeleton, asset.Meshes, job.MirrorAxis)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	log.Debug("rebased", "axis", job.MirrorAxis.String(), "offset", fmt.Sprintf("(%.4f, %.4f, %.4f)", offset.X, offset.Y, offset.Z))

	if job.ColorTexture != "" || job.NormalTexture != "" || job.MaterialName != "" {
		for i := range asset.Meshes {
			material.Attach(&asset.Meshes[i], textures, job.MaterialName, job.ColorTexture, job.NormalTexture)
		}
	}

	res, err := exp.Export(outPath, asset)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	log.Info("exported", "path", res.Path, "bytes", res.Bytes)

	return &Result{
		BonesKept:    len(keep),
		BonesRemoved: len(removed),
		Offset:       offset,
		Export:       res,
	}, nil
}

// discardMeshes removes named duplicate/alternate submeshes before any
// geometry is touched.
func discardMeshes(asset *rig.Asset, names []string, log *slog.Logger) {
	if len(names) == 0 {
		return
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := asset.Meshes[:0]
	for i := range asset.Meshes {
		if drop[asset.Meshes[i].Name] {
			log.Debug("mesh discarded", "mesh", asset.Meshes[i].Name)
			continue
		}
		kept = append(kept, asset.Meshes[i])
	}
	asset.Meshes = kept
}

// bakeTransforms applies each mesh's object transform into its vertex data,
// resets the transform to identity, and tags the mesh with the skeleton's
// coordinate space. After this stage mesh and skeleton positions share one
// space, which the rebaser requires.
func bakeTransforms(asset *rig.Asset) {
	for i := range asset.Meshes {
		m := &asset.Meshes[i]
		if !m.Transform.IsIdentity() {
			for vi := range m.Verts {
				m.Verts[vi] = m.Transform.MulPoint(m.Verts[vi])
			}
			m.Transform = mathutil.Mat4Identity()
		}
		m.Space = asset.Skeleton.Space
	}
}
