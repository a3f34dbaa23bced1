package rig

import "fmt"

// Find returns the index of the named bone, or -1.
func (s *Skeleton) Find(name string) int {
	for i := range s.Bones {
		if s.Bones[i].Name == name {
			return i
		}
	}
	return -1
}

// RootBone returns a pointer to the designated root bone. It fails with
// ErrMissingRoot when Root is unset, names an absent bone, or the named bone
// still has a parent link.
func (s *Skeleton) RootBone() (*Bone, error) {
	if s.Root == "" {
		return nil, fmt.Errorf("rig: skeleton has no designated root: %w", ErrMissingRoot)
	}
	i := s.Find(s.Root)
	if i < 0 {
		return nil, fmt.Errorf("rig: root bone %q absent: %w", s.Root, ErrMissingRoot)
	}
	if s.Bones[i].Parent != "" {
		return nil, fmt.Errorf("rig: root bone %q still has parent %q: %w", s.Root, s.Bones[i].Parent, ErrMissingRoot)
	}
	return &s.Bones[i], nil
}

// Validate checks that the parent graph is a forest: every parent link
// resolves to an existing bone, bone names are unique, and no parent chain
// cycles. Returns ErrMalformedSkeleton otherwise.
func (s *Skeleton) Validate() error {
	byName := make(map[string]int, len(s.Bones))
	for i, b := range s.Bones {
		if b.Name == "" {
			return fmt.Errorf("rig: bone %d has empty name: %w", i, ErrMalformedSkeleton)
		}
		if _, dup := byName[b.Name]; dup {
			return fmt.Errorf("rig: duplicate bone name %q: %w", b.Name, ErrMalformedSkeleton)
		}
		byName[b.Name] = i
	}

	for _, b := range s.Bones {
		if b.Parent == "" {
			continue
		}
		if _, ok := byName[b.Parent]; !ok {
			return fmt.Errorf("rig: bone %q references absent parent %q: %w", b.Name, b.Parent, ErrMalformedSkeleton)
		}
	}

	// Walk each parent chain with a visited set to reject cycles.
	for _, b := range s.Bones {
		seen := map[string]bool{b.Name: true}
		cur := b.Parent
		for cur != "" {
			if seen[cur] {
				return fmt.Errorf("rig: parent cycle through bone %q: %w", cur, ErrMalformedSkeleton)
			}
			seen[cur] = true
			cur = s.Bones[byName[cur]].Parent
		}
	}

	return nil
}

// Children builds a child-name adjacency map over the current bones.
func (s *Skeleton) Children() map[string][]string {
	children := make(map[string][]string, len(s.Bones))
	for _, b := range s.Bones {
		if b.Parent != "" {
			children[b.Parent] = append(children[b.Parent], b.Name)
		}
	}
	return children
}

// Validate checks structural consistency of the asset: a well-formed
// skeleton and, per mesh, a weight table parallel to the vertex slice.
func (a *Asset) Validate() error {
	if err := a.Skeleton.Validate(); err != nil {
		return err
	}
	for i := range a.Meshes {
		m := &a.Meshes[i]
		if len(m.Weights) != len(m.Verts) {
			return fmt.Errorf("rig: mesh %q has %d weight entries for %d vertices", m.Name, len(m.Weights), len(m.Verts))
		}
	}
	return nil
}
