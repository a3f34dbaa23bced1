// Package reweight redistributes skin weights when bones are removed:
// influence of a removed bone is folded into a surviving merge target so
// deformation is not lost, then dead vertex groups are dropped.
package reweight

import (
	"fmt"

	"handrig-export/internal/mathutil"
	"handrig-export/internal/rig"
)

// Merge folds, per vertex, the summed weight of every removed bone into the
// vertex's mergeTarget weight and deletes the removed entries. The merged
// weight is clamped to 1.0, so total weight per vertex is intentionally not
// preserved when the sum would exceed the valid range; this is a documented
// lossy step, not an error. Vertices with no weight on any removed bone are
// untouched, and no other weights on a vertex are modified.
//
// Fails with rig.ErrInvalidMergeTarget when mergeTarget is itself in the
// removal set. The maps are updated in place.
func Merge(weights []rig.VertexWeights, removed []string, mergeTarget string) error {
	removedSet := make(map[string]bool, len(removed))
	for _, name := range removed {
		removedSet[name] = true
	}
	if removedSet[mergeTarget] {
		return fmt.Errorf("reweight: merge target %q is in the removal set: %w", mergeTarget, rig.ErrInvalidMergeTarget)
	}

	for _, vw := range weights {
		if vw == nil {
			continue
		}
		sum := 0.0
		for _, name := range removed {
			if w, ok := vw[name]; ok {
				sum += w
				delete(vw, name)
			}
		}
		if sum == 0 {
			continue
		}
		vw[mergeTarget] = mathutil.Clamp01(vw[mergeTarget] + sum)
	}
	return nil
}

// DropFunc decides whether a vertex group name should be discarded during
// cleanup. Policy (suffix conventions, explicit denylists) lives with the
// caller; the core stays name-agnostic.
type DropFunc func(name string) bool

// DropGroups deletes every weight entry whose group name matches drop. Runs
// after Merge and never re-triggers merge logic. Returns the set of group
// names that were dropped.
func DropGroups(weights []rig.VertexWeights, drop DropFunc) map[string]bool {
	dropped := make(map[string]bool)
	if drop == nil {
		return dropped
	}
	for _, vw := range weights {
		for name := range vw {
			if drop(name) {
				delete(vw, name)
				dropped[name] = true
			}
		}
	}
	return dropped
}

// GroupDomain collects the distinct group names present in a weight table.
func GroupDomain(weights []rig.VertexWeights) map[string]bool {
	domain := make(map[string]bool)
	for _, vw := range weights {
		for name := range vw {
			domain[name] = true
		}
	}
	return domain
}
