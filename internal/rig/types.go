// Package rig holds the in-memory data model for a skinned character rig:
// a bone hierarchy plus meshes with per-vertex bone weights. Positions use
// a single shared skeleton-local coordinate space once meshes have had
// their object transforms baked (see the Space tag).
package rig

import (
	"gonum.org/v1/gonum/spatial/r3"

	"handrig-export/internal/mathutil"
)

// Space tags which coordinate space positions are expressed in. Meshes load
// in object space and enter skeleton space only after their object transform
// has been baked into the vertex data.
type Space string

const (
	SpaceObject   Space = "object"
	SpaceSkeleton Space = "skeleton"
)

// Bone is one node in the skeleton hierarchy. An empty Parent marks a root.
// Head and Tail are positions in the skeleton's local space.
type Bone struct {
	Name   string
	Parent string
	Head   r3.Vec
	Tail   r3.Vec
}

// Skeleton is an ordered bone collection. Root names the designated root
// bone; before extraction it may be empty (forest input), after extraction
// exactly one bone has no parent and Root names it.
type Skeleton struct {
	Bones []Bone
	Root  string
	Space Space
}

// VertexWeights maps bone name to influence weight for one vertex.
// A missing key means zero influence; weights live in [0, 1].
type VertexWeights map[string]float64

// Weight returns the influence of bone on this vertex, zero when absent.
func (w VertexWeights) Weight(bone string) float64 {
	return w[bone]
}

// Mesh holds geometry skinned against a Skeleton. Weights runs parallel to
// Verts (one weight map per vertex). Transform is the object-level transform
// still to be baked into Verts; identity once baked.
type Mesh struct {
	Name      string
	Verts     []r3.Vec
	Weights   []VertexWeights
	Space     Space
	Transform mathutil.Mat4
	Material  *Material
}

// Material is a surface description attached by the material collaborator.
// The core pipeline never inspects it beyond carrying it to the exporter.
type Material struct {
	Name   string
	Color  *TextureRef
	Normal *TextureRef
}

// TextureRef points at a resolved texture on disk. Width/Height are filled
// in when the texture was decodable, for export diagnostics.
type TextureRef struct {
	Name   string
	Path   string
	Width  int
	Height int
}

// Asset pairs one skeleton with its skinned meshes; the unit the pipeline
// owns for the duration of a run.
type Asset struct {
	Skeleton Skeleton
	Meshes   []Mesh
}
