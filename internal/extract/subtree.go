// Package extract prunes a bone hierarchy down to one bone and its
// descendants, re-rooting the result at that bone.
package extract

import (
	"fmt"

	"handrig-export/internal/rig"
)

// Subtree returns a fresh skeleton containing only keepRoot and its
// transitive descendants, with keepRoot's parent link cleared so it becomes
// the single root. Bones outside the subtree are dropped wholesale; deletion
// is subtree-transitive, so nothing needs reparenting. Parent links inside
// the kept set are untouched.
//
// Fails with rig.ErrBoneNotFound when keepRoot is absent,
// rig.ErrMalformedSkeleton when the input parent graph is not a forest, and
// rig.ErrEmptyResult when traversal retains no bones.
func Subtree(skel rig.Skeleton, keepRoot string) (rig.Skeleton, error) {
	if err := skel.Validate(); err != nil {
		return rig.Skeleton{}, fmt.Errorf("extract: %w", err)
	}
	if skel.Find(keepRoot) < 0 {
		return rig.Skeleton{}, fmt.Errorf("extract: keep root %q: %w", keepRoot, rig.ErrBoneNotFound)
	}

	keep := Keep(skel, keepRoot)
	if len(keep) < 1 {
		return rig.Skeleton{}, fmt.Errorf("extract: subtree of %q: %w", keepRoot, rig.ErrEmptyResult)
	}

	out := rig.Skeleton{
		Bones: make([]rig.Bone, 0, len(keep)),
		Root:  keepRoot,
		Space: skel.Space,
	}
	for _, b := range skel.Bones {
		if !keep[b.Name] {
			continue
		}
		if b.Name == keepRoot {
			b.Parent = ""
		}
		out.Bones = append(out.Bones, b)
	}
	return out, nil
}

// Keep computes the retained identifier set: keepRoot plus every bone
// reachable from it by child links. Assumes a validated skeleton.
func Keep(skel rig.Skeleton, keepRoot string) map[string]bool {
	children := skel.Children()
	keep := make(map[string]bool)

	stack := []string{keepRoot}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if keep[name] {
			continue
		}
		keep[name] = true
		stack = append(stack, children[name]...)
	}
	return keep
}

// Removed lists the bones of skel that are not in the keep set, in skeleton
// order. The pipeline feeds this to the weight reassigner.
func Removed(skel rig.Skeleton, keep map[string]bool) []string {
	var removed []string
	for _, b := range skel.Bones {
		if !keep[b.Name] {
			removed = append(removed, b.Name)
		}
	}
	return removed
}
