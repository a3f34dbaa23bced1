package rebase

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"handrig-export/internal/mathutil"
	"handrig-export/internal/rig"
)

func handSkeleton() rig.Skeleton {
	return rig.Skeleton{
		Root:  "hand.L",
		Space: rig.SpaceSkeleton,
		Bones: []rig.Bone{
			{Name: "hand.L", Head: r3.Vec{X: 2, Y: 1}, Tail: r3.Vec{X: 2.5, Y: 1}},
			{Name: "thumb.L", Parent: "hand.L", Head: r3.Vec{X: 2.2, Y: 0.8}, Tail: r3.Vec{X: 2.4, Y: 0.7}},
		},
	}
}

func TestRebaseMirrorXMatchesHandScenario(t *testing.T) {
	skel := handSkeleton()
	meshes := []rig.Mesh{{
		Name:    "hand",
		Space:   rig.SpaceSkeleton,
		Verts:   []r3.Vec{{X: -1, Y: 1}},
		Weights: []rig.VertexWeights{{"hand.L": 1}},
	}}

	offset, err := Rebase(&skel, meshes, mathutil.AxisX)
	if err != nil {
		t.Fatalf("rebase failed: %v", err)
	}

	// Root head (2,1,0) mirrors to (-2,1,0), which is the offset.
	if (offset != r3.Vec{X: -2, Y: 1}) {
		t.Errorf("offset = %v, want (-2, 1, 0)", offset)
	}

	// Root head lands exactly at the origin.
	root, err := skel.RootBone()
	if err != nil {
		t.Fatalf("root lookup: %v", err)
	}
	if (root.Head != r3.Vec{}) {
		t.Errorf("root head = %v, want origin", root.Head)
	}

	// Vertex (-1,1,0) → mirrored (1,1,0) → minus offset = (3,0,0).
	if (meshes[0].Verts[0] != r3.Vec{X: 3}) {
		t.Errorf("vertex = %v, want (3, 0, 0)", meshes[0].Verts[0])
	}
}

func TestRebaseKeepsSkeletonAndMeshCoLocated(t *testing.T) {
	skel := handSkeleton()
	// Vertex coincident with the thumb head pre-rebase.
	coincident := skel.Bones[1].Head
	meshes := []rig.Mesh{{
		Name:    "hand",
		Space:   rig.SpaceSkeleton,
		Verts:   []r3.Vec{coincident},
		Weights: []rig.VertexWeights{{"thumb.L": 1}},
	}}

	if _, err := Rebase(&skel, meshes, mathutil.AxisX); err != nil {
		t.Fatalf("rebase failed: %v", err)
	}

	if meshes[0].Verts[0] != skel.Bones[1].Head {
		t.Errorf("coincident vertex diverged: vertex %v, bone head %v", meshes[0].Verts[0], skel.Bones[1].Head)
	}
}

func TestRebaseWithoutMirrorOnlyTranslates(t *testing.T) {
	skel := handSkeleton()
	meshes := []rig.Mesh{{
		Name:    "hand",
		Space:   rig.SpaceSkeleton,
		Verts:   []r3.Vec{{X: 2, Y: 1}},
		Weights: []rig.VertexWeights{{"hand.L": 1}},
	}}

	offset, err := Rebase(&skel, meshes, mathutil.AxisNone)
	if err != nil {
		t.Fatalf("rebase failed: %v", err)
	}
	if (offset != r3.Vec{X: 2, Y: 1}) {
		t.Errorf("offset = %v, want (2, 1, 0)", offset)
	}
	if (meshes[0].Verts[0] != r3.Vec{}) {
		t.Errorf("vertex at root head should land on origin, got %v", meshes[0].Verts[0])
	}
}

func TestRebaseTransformsTails(t *testing.T) {
	skel := handSkeleton()
	if _, err := Rebase(&skel, nil, mathutil.AxisX); err != nil {
		t.Fatalf("rebase failed: %v", err)
	}
	// hand.L tail (2.5,1,0) → mirrored (-2.5,1,0) → minus (-2,1,0) = (-0.5,0,0).
	if (skel.Bones[0].Tail != r3.Vec{X: -0.5}) {
		t.Errorf("root tail = %v, want (-0.5, 0, 0)", skel.Bones[0].Tail)
	}
}

func TestRebaseMissingRoot(t *testing.T) {
	// No designated root, root absent, root not parentless.
	for _, skel := range []rig.Skeleton{
		{Bones: []rig.Bone{{Name: "a"}}},
		{Root: "b", Bones: []rig.Bone{{Name: "a"}}},
		{Root: "a", Bones: []rig.Bone{{Name: "a", Parent: "x"}}},
	} {
		if _, err := Rebase(&skel, nil, mathutil.AxisX); !errors.Is(err, rig.ErrMissingRoot) {
			t.Errorf("skeleton %+v: err = %v, want ErrMissingRoot", skel, err)
		}
	}
}

func TestRebaseRejectsUnbakedMesh(t *testing.T) {
	skel := handSkeleton()
	meshes := []rig.Mesh{{
		Name:    "hand",
		Space:   rig.SpaceObject,
		Verts:   []r3.Vec{{}},
		Weights: []rig.VertexWeights{{}},
	}}
	if _, err := Rebase(&skel, meshes, mathutil.AxisX); !errors.Is(err, rig.ErrSpaceMismatch) {
		t.Fatalf("err = %v, want ErrSpaceMismatch", err)
	}
}
