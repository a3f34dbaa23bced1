package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"handrig-export/internal/export"
	"handrig-export/internal/mathutil"
	"handrig-export/internal/rig"
)

// captureExporter records the handed-off asset instead of writing anything.
type captureExporter struct {
	called bool
	asset  *rig.Asset
	path   string
}

func (c *captureExporter) Export(path string, asset *rig.Asset) (export.Result, error) {
	c.called = true
	c.asset = asset
	c.path = path
	return export.Result{Path: path, Bytes: 42}, nil
}

func armAsset() *rig.Asset {
	return &rig.Asset{
		Skeleton: rig.Skeleton{
			Space: rig.SpaceSkeleton,
			Bones: []rig.Bone{
				{Name: "shoulder", Head: r3.Vec{}, Tail: r3.Vec{X: 0.5, Y: 0.5}},
				{Name: "forearm", Parent: "shoulder", Head: r3.Vec{X: 1, Y: 1}, Tail: r3.Vec{X: 1.5, Y: 1}},
				{Name: "hand", Parent: "forearm", Head: r3.Vec{X: 2, Y: 1}, Tail: r3.Vec{X: 2.5, Y: 1}},
				{Name: "finger", Parent: "hand", Head: r3.Vec{X: 2.4, Y: 1}, Tail: r3.Vec{X: 2.6, Y: 1}},
			},
		},
		Meshes: []rig.Mesh{
			{
				Name:      "Cube.000",
				Space:     rig.SpaceObject,
				Transform: mathutil.Mat4Identity(),
				Verts:     []r3.Vec{{X: -1, Y: 1}, {}, {X: 2, Y: 1}},
				Weights: []rig.VertexWeights{
					{"forearm": 0.3, "hand": 0.6, "ring.R": 0.1},
					{"shoulder": 1.0},
					{"forearm": 0.8, "hand": 0.6},
				},
			},
			{
				Name:      "Cube.005",
				Space:     rig.SpaceObject,
				Transform: mathutil.Mat4Identity(),
				Verts:     []r3.Vec{{}},
				Weights:   []rig.VertexWeights{{}},
			},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	asset := armAsset()
	sink := &captureExporter{}

	job := Job{
		KeepRoot:   "hand",
		MirrorAxis: mathutil.AxisX,
		DropMeshes: []string{"Cube.005"},
		DropGroup:  func(name string) bool { return strings.Contains(name, ".R") },
	}
	res, err := Run(asset, job, nil, sink, "out/hand.rig.json", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !sink.called || sink.path != "out/hand.rig.json" {
		t.Fatalf("exporter invocation: called=%v path=%q", sink.called, sink.path)
	}
	if res.BonesKept != 2 || res.BonesRemoved != 2 {
		t.Errorf("kept=%d removed=%d, want 2/2", res.BonesKept, res.BonesRemoved)
	}
	if res.Export.Bytes != 42 {
		t.Errorf("export bytes = %d", res.Export.Bytes)
	}

	// Duplicate mesh discarded.
	if len(asset.Meshes) != 1 || asset.Meshes[0].Name != "Cube.000" {
		t.Fatalf("meshes after run: %+v", meshNames(asset))
	}

	// Skeleton: hand re-rooted at the origin, finger follows.
	skel := &asset.Skeleton
	if skel.Root != "hand" || len(skel.Bones) != 2 {
		t.Fatalf("skeleton after run: root=%q bones=%d", skel.Root, len(skel.Bones))
	}
	if (skel.Bones[0].Head != r3.Vec{}) {
		t.Errorf("hand head = %v, want origin", skel.Bones[0].Head)
	}
	// finger head (2.4,1,0) → mirrored (-2.4,1,0) → minus offset (-2,1,0) = (-0.4,0,0).
	if d := r3.Norm(r3.Sub(skel.Bones[1].Head, r3.Vec{X: -0.4})); d > 1e-12 {
		t.Errorf("finger head = %v, want (-0.4, 0, 0)", skel.Bones[1].Head)
	}

	// Weights: forearm/shoulder merged into hand, ring.R dropped, clamp holds.
	w := asset.Meshes[0].Weights
	if got := w[0].Weight("hand"); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("v0 hand weight = %v, want 0.9", got)
	}
	if _, ok := w[0]["ring.R"]; ok {
		t.Error("denylisted group ring.R survived")
	}
	if got := w[1].Weight("hand"); got != 1.0 {
		t.Errorf("v1 hand weight = %v, want 1.0", got)
	}
	if got := w[2].Weight("hand"); got != 1.0 {
		t.Errorf("v2 hand weight = %v, want clamped 1.0", got)
	}
	for vi, vw := range w {
		for _, gone := range []string{"shoulder", "forearm"} {
			if _, ok := vw[gone]; ok {
				t.Errorf("vertex %d still weighted to removed bone %q", vi, gone)
			}
		}
	}

	// Vertices: identical mirror + offset as the skeleton.
	verts := asset.Meshes[0].Verts
	if (verts[0] != r3.Vec{X: 3}) {
		t.Errorf("v0 = %v, want (3, 0, 0)", verts[0])
	}
	if (verts[2] != r3.Vec{}) {
		t.Errorf("v2 (was at hand head) = %v, want origin", verts[2])
	}
	if asset.Meshes[0].Space != rig.SpaceSkeleton {
		t.Errorf("mesh space = %q after bake", asset.Meshes[0].Space)
	}
}

func TestRunBakesObjectTransform(t *testing.T) {
	asset := &rig.Asset{
		Skeleton: rig.Skeleton{
			Space: rig.SpaceSkeleton,
			Bones: []rig.Bone{{Name: "root", Head: r3.Vec{}, Tail: r3.Vec{Y: 1}}},
		},
		Meshes: []rig.Mesh{{
			Name:      "m",
			Space:     rig.SpaceObject,
			Transform: mathutil.Translation(r3.Vec{X: 1}),
			Verts:     []r3.Vec{{X: 1, Y: 2, Z: 3}},
			Weights:   []rig.VertexWeights{{"root": 1}},
		}},
	}
	sink := &captureExporter{}

	_, err := Run(asset, Job{KeepRoot: "root", MirrorAxis: mathutil.AxisNone}, nil, sink, "out.json", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if (asset.Meshes[0].Verts[0] != r3.Vec{X: 2, Y: 2, Z: 3}) {
		t.Errorf("baked vertex = %v, want (2, 2, 3)", asset.Meshes[0].Verts[0])
	}
	if !asset.Meshes[0].Transform.IsIdentity() {
		t.Error("object transform not reset after bake")
	}
}

func TestRunAbortsBeforeExportOnBadKeepRoot(t *testing.T) {
	asset := armAsset()
	sink := &captureExporter{}

	_, err := Run(asset, Job{KeepRoot: "tail"}, nil, sink, "out.json", nil)
	if !errors.Is(err, rig.ErrBoneNotFound) {
		t.Fatalf("err = %v, want ErrBoneNotFound", err)
	}
	if sink.called {
		t.Error("exporter invoked despite stage failure")
	}
}

func TestRunRejectsMergeTargetOutsideSubtree(t *testing.T) {
	asset := armAsset()
	sink := &captureExporter{}

	_, err := Run(asset, Job{KeepRoot: "hand", MergeTarget: "shoulder"}, nil, sink, "out.json", nil)
	if !errors.Is(err, rig.ErrInvalidMergeTarget) {
		t.Fatalf("err = %v, want ErrInvalidMergeTarget", err)
	}
	if sink.called {
		t.Error("exporter invoked despite stage failure")
	}
}

func TestRunRequiresKeepRoot(t *testing.T) {
	asset := armAsset()
	if _, err := Run(asset, Job{}, nil, &captureExporter{}, "out.json", nil); err == nil {
		t.Fatal("empty keep root accepted")
	}
}

func meshNames(asset *rig.Asset) string {
	names := make([]string, len(asset.Meshes))
	for i := range asset.Meshes {
		names[i] = asset.Meshes[i].Name
	}
	return fmt.Sprint(names)
}
