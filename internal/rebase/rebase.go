// Package rebase applies one consistent coordinate change to a pruned
// skeleton and its meshes: an optional axis mirror, then a translation that
// puts the root bone's head at the origin. Bones and vertices undergo the
// identical transform so skin binding stays valid.
package rebase

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"handrig-export/internal/mathutil"
	"handrig-export/internal/rig"
)

// Rebase mirrors every bone head/tail on axis, computes the offset as the
// root bone's head *after* mirroring, translates all bones by -offset, and
// applies the same mirror and -offset to every mesh vertex. The order is
// load-bearing: the offset is defined on mirrored positions, and vertices
// must see exactly the transform the skeleton saw. After return the root
// bone head is the zero vector. The returned offset is the translation that
// was removed, for diagnostics.
//
// Fails with rig.ErrMissingRoot when the skeleton has no identifiable single
// root, and rig.ErrSpaceMismatch when a mesh has not been converted into the
// skeleton's coordinate space.
func Rebase(skel *rig.Skeleton, meshes []rig.Mesh, axis mathutil.Axis) (r3.Vec, error) {
	if _, err := skel.RootBone(); err != nil {
		return r3.Vec{}, fmt.Errorf("rebase: %w", err)
	}
	for i := range meshes {
		if meshes[i].Space != skel.Space {
			return r3.Vec{}, fmt.Errorf("rebase: mesh %q is in space %q, skeleton in %q: %w",
				meshes[i].Name, meshes[i].Space, skel.Space, rig.ErrSpaceMismatch)
		}
	}

	for i := range skel.Bones {
		b := &skel.Bones[i]
		b.Head = mathutil.Mirror(b.Head, axis)
		b.Tail = mathutil.Mirror(b.Tail, axis)
	}

	// Offset is defined on the post-mirror root head.
	root, err := skel.RootBone()
	if err != nil {
		return r3.Vec{}, fmt.Errorf("rebase: %w", err)
	}
	offset := root.Head

	for i := range skel.Bones {
		b := &skel.Bones[i]
		b.Head = r3.Sub(b.Head, offset)
		b.Tail = r3.Sub(b.Tail, offset)
	}

	for i := range meshes {
		verts := meshes[i].Verts
		for vi := range verts {
			verts[vi] = r3.Sub(mathutil.Mirror(verts[vi], axis), offset)
		}
	}

	return offset, nil
}
