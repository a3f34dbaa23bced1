package main

import (
	"fmt"
	"math"
	"os"
	"sort"

	"handrig-export/internal/reweight"
	"handrig-export/internal/rig"
	"handrig-export/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <scene.json>...")
		os.Exit(2)
	}

	for _, arg := range os.Args[1:] {
		asset, err := scene.Load(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Load error %s: %v\n", arg, err)
			continue
		}
		fmt.Printf("\n=== %s (bones=%d meshes=%d) ===\n", arg, len(asset.Skeleton.Bones), len(asset.Meshes))

		fmt.Println("--- SKELETON ---")
		printSkeleton(&asset.Skeleton)

		fmt.Println("--- MESHES ---")
		for i := range asset.Meshes {
			printMesh(&asset.Meshes[i])
		}
	}
}

func printSkeleton(skel *rig.Skeleton) {
	children := skel.Children()
	depth := func(b rig.Bone) int {
		d := 0
		cur := b.Parent
		seen := map[string]bool{}
		for cur != "" && !seen[cur] {
			seen[cur] = true
			d++
			i := skel.Find(cur)
			if i < 0 {
				break
			}
			cur = skel.Bones[i].Parent
		}
		return d
	}
	for _, b := range skel.Bones {
		indent := ""
		for i := 0; i < depth(b); i++ {
			indent += "  "
		}
		marker := ""
		if b.Name == skel.Root {
			marker = " (root)"
		}
		fmt.Printf("  %s%s%s head=(%.3f, %.3f, %.3f) children=%d\n",
			indent, b.Name, marker, b.Head.X, b.Head.Y, b.Head.Z, len(children[b.Name]))
	}
}

func printMesh(m *rig.Mesh) {
	min := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		for k, c := range [3]float64{v.X, v.Y, v.Z} {
			if c < min[k] {
				min[k] = c
			}
			if c > max[k] {
				max[k] = c
			}
		}
	}

	groups := reweight.GroupDomain(m.Weights)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("  Mesh %s: verts=%d space=%s", m.Name, len(m.Verts), m.Space)
	if !m.Transform.IsIdentity() {
		fmt.Printf(" transform=pending")
	}
	fmt.Println()
	if len(m.Verts) > 0 {
		fmt.Printf("    bounds: X[%.3f..%.3f] Y[%.3f..%.3f] Z[%.3f..%.3f]\n",
			min[0], max[0], min[1], max[1], min[2], max[2])
	}
	fmt.Printf("    groups (%d): %v\n", len(names), names)
}
