package material

import "handrig-export/internal/rig"

// Attach builds a material from the named color and normal textures and
// attaches it to the mesh. Either name may be empty; a name that does not
// resolve is skipped rather than failing, matching the best-effort texture
// lookup of the authoring side. Decodable textures get their dimensions
// recorded on the reference.
func Attach(mesh *rig.Mesh, res Resolver, name, colorTex, normalTex string) {
	mat := &rig.Material{Name: name}
	mat.Color = resolveRef(res, colorTex)
	mat.Normal = resolveRef(res, normalTex)
	if mat.Color == nil && mat.Normal == nil && name == "" {
		return
	}
	mesh.Material = mat
}

func resolveRef(res Resolver, texName string) *rig.TextureRef {
	if texName == "" || res == nil {
		return nil
	}
	path, ok := res.ResolvePath(texName)
	if !ok {
		return nil
	}
	ref := &rig.TextureRef{Name: texName, Path: path}
	if img := res.Resolve(texName); img != nil {
		b := img.Bounds()
		ref.Width = b.Dx()
		ref.Height = b.Dy()
	}
	return ref
}
