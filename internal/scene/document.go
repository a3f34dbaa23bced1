// Package scene reads and writes the JSON scene document used as the
// concrete asset boundary: a skeleton plus skinned meshes, as handed over by
// the upstream scene-loading collaborator.
package scene

import (
	"handrig-export/internal/mathutil"
	"handrig-export/internal/rig"

	"gonum.org/v1/gonum/spatial/r3"
)

// Document is the on-disk shape of an asset.
type Document struct {
	Skeleton SkeletonDoc `json:"skeleton"`
	Meshes   []MeshDoc   `json:"meshes"`
}

type SkeletonDoc struct {
	Root  string    `json:"root,omitempty"`
	Space string    `json:"space,omitempty"`
	Bones []BoneDoc `json:"bones"`
}

type BoneDoc struct {
	Name   string     `json:"name"`
	Parent string     `json:"parent,omitempty"`
	Head   [3]float64 `json:"head"`
	Tail   [3]float64 `json:"tail"`
}

type MeshDoc struct {
	Name      string               `json:"name"`
	Space     string               `json:"space,omitempty"`
	Transform *[16]float64         `json:"transform,omitempty"`
	Verts     [][3]float64         `json:"vertices"`
	Weights   []map[string]float64 `json:"weights,omitempty"`
	Material  *MaterialDoc         `json:"material,omitempty"`
}

type MaterialDoc struct {
	Name   string      `json:"name"`
	Color  *TextureDoc `json:"color,omitempty"`
	Normal *TextureDoc `json:"normal,omitempty"`
}

type TextureDoc struct {
	Name   string `json:"name"`
	Path   string `json:"path,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ToAsset converts the document into the in-memory model. Missing weight
// tables become empty maps (zero influence everywhere); a missing transform
// means identity; a missing mesh space defaults to object space.
func (d *Document) ToAsset() *rig.Asset {
	asset := &rig.Asset{
		Skeleton: rig.Skeleton{
			Root:  d.Skeleton.Root,
			Space: spaceOrDefault(d.Skeleton.Space, rig.SpaceSkeleton),
			Bones: make([]rig.Bone, len(d.Skeleton.Bones)),
		},
	}
	for i, b := range d.Skeleton.Bones {
		asset.Skeleton.Bones[i] = rig.Bone{
			Name:   b.Name,
			Parent: b.Parent,
			Head:   vec(b.Head),
			Tail:   vec(b.Tail),
		}
	}

	asset.Meshes = make([]rig.Mesh, len(d.Meshes))
	for i, m := range d.Meshes {
		mesh := rig.Mesh{
			Name:      m.Name,
			Space:     spaceOrDefault(m.Space, rig.SpaceObject),
			Transform: mathutil.Mat4Identity(),
			Verts:     make([]r3.Vec, len(m.Verts)),
			Weights:   make([]rig.VertexWeights, len(m.Verts)),
		}
		if m.Transform != nil {
			mesh.Transform = mathutil.Mat4(*m.Transform)
		}
		for vi, v := range m.Verts {
			mesh.Verts[vi] = vec(v)
		}
		for vi := range mesh.Weights {
			if vi < len(m.Weights) && m.Weights[vi] != nil {
				mesh.Weights[vi] = rig.VertexWeights(m.Weights[vi])
			} else {
				mesh.Weights[vi] = rig.VertexWeights{}
			}
		}
		if m.Material != nil {
			mesh.Material = &rig.Material{
				Name:   m.Material.Name,
				Color:  texRef(m.Material.Color),
				Normal: texRef(m.Material.Normal),
			}
		}
		asset.Meshes[i] = mesh
	}
	return asset
}

// FromAsset converts the in-memory model back into document form, as handed
// to the export sink.
func FromAsset(asset *rig.Asset) *Document {
	doc := &Document{
		Skeleton: SkeletonDoc{
			Root:  asset.Skeleton.Root,
			Space: string(asset.Skeleton.Space),
			Bones: make([]BoneDoc, len(asset.Skeleton.Bones)),
		},
		Meshes: make([]MeshDoc, len(asset.Meshes)),
	}
	for i, b := range asset.Skeleton.Bones {
		doc.Skeleton.Bones[i] = BoneDoc{
			Name:   b.Name,
			Parent: b.Parent,
			Head:   arr(b.Head),
			Tail:   arr(b.Tail),
		}
	}
	for i := range asset.Meshes {
		m := &asset.Meshes[i]
		md := MeshDoc{
			Name:    m.Name,
			Space:   string(m.Space),
			Verts:   make([][3]float64, len(m.Verts)),
			Weights: make([]map[string]float64, len(m.Weights)),
		}
		if !m.Transform.IsIdentity() {
			t := [16]float64(m.Transform)
			md.Transform = &t
		}
		for vi, v := range m.Verts {
			md.Verts[vi] = arr(v)
		}
		for vi, vw := range m.Weights {
			md.Weights[vi] = map[string]float64(vw)
		}
		if m.Material != nil {
			md.Material = &MaterialDoc{
				Name:   m.Material.Name,
				Color:  texDoc(m.Material.Color),
				Normal: texDoc(m.Material.Normal),
			}
		}
		doc.Meshes[i] = md
	}
	return doc
}

func texRef(t *TextureDoc) *rig.TextureRef {
	if t == nil {
		return nil
	}
	return &rig.TextureRef{Name: t.Name, Path: t.Path, Width: t.Width, Height: t.Height}
}

func texDoc(t *rig.TextureRef) *TextureDoc {
	if t == nil {
		return nil
	}
	return &TextureDoc{Name: t.Name, Path: t.Path, Width: t.Width, Height: t.Height}
}

func spaceOrDefault(s string, def rig.Space) rig.Space {
	if s == "" {
		return def
	}
	return rig.Space(s)
}

func vec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func arr(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
