package model

import (
	"bytes"
	"context"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/sensorlab/internal/assets"
	"github.com/Faultbox/sensorlab/internal/logger"
	"github.com/Faultbox/sensorlab/pkg/math"
)

// Decode parses a .glb or .gltf file held in memory.
func Decode(data []byte) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return BuildMesh(doc)
}

// LoadAsync reads and decodes a model in the background. Decode failures are
// reported as asset load errors like missing files.
func LoadAsync(ctx context.Context, mgr *assets.Manager, path string) *assets.Future[*Mesh] {
	read := mgr.LoadAsync(ctx, assets.KindModel, path)
	return assets.Then(ctx, read, func(data []byte) (*Mesh, error) {
		mesh, err := Decode(data)
		if err != nil {
			return nil, &assets.AssetLoadError{Kind: assets.KindModel, Path: mgr.Resolve(path), Err: err}
		}
		logger.Info("model loaded",
			zap.String("path", path),
			zap.Int("vertices", len(mesh.Vertices)),
			zap.Int("triangles", len(mesh.Indices)/3),
			zap.Int("groups", len(mesh.Groups)),
		)
		return mesh, nil
	})
}

// BuildMesh walks the default scene and bakes every triangle primitive into
// one mesh, grouped by material in traversal order.
func BuildMesh(doc *gltf.Document) (*Mesh, error) {
	mesh := &Mesh{
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	visited := make(map[int]bool)
	var walk func(node int, parent math.Mat4) error
	walk = func(node int, parent math.Mat4) error {
		if node < 0 || node >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", node)
		}
		if visited[node] {
			return fmt.Errorf("node %d reached twice", node)
		}
		visited[node] = true

		n := doc.Nodes[node]
		world := parent.Mul(localMatrix(n))
		if n.Mesh != nil {
			if err := addMesh(mesh, doc, *n.Mesh, world); err != nil {
				return err
			}
		}
		for _, child := range n.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := walk(root, math.Identity()); err != nil {
			return nil, err
		}
	}

	if len(mesh.Vertices) == 0 {
		mesh.Bounds = Bounds{}
	}
	return mesh, nil
}

// rootNodes returns the nodes of the default scene, or of the first scene
// when none is marked default.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	scene := 0
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		scene = *doc.Scene
	}
	return doc.Scenes[scene].Nodes
}

// localMatrix returns a node's transform. A node with an explicit matrix uses
// it; otherwise translation, rotation and scale are composed.
func localMatrix(n *gltf.Node) math.Mat4 {
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m math.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		return m
	}

	rot := n.RotationOrDefault()
	scale := n.ScaleOrDefault()
	t := math.Vec3{X: float32(n.Translation[0]), Y: float32(n.Translation[1]), Z: float32(n.Translation[2])}
	r := math.Quat{X: float32(rot[0]), Y: float32(rot[1]), Z: float32(rot[2]), W: float32(rot[3])}
	s := math.Vec3{X: float32(scale[0]), Y: float32(scale[1]), Z: float32(scale[2])}
	return math.TRS(t, r, s)
}

func addMesh(out *Mesh, doc *gltf.Document, index int, world math.Mat4) error {
	if index < 0 || index >= len(doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", index)
	}

	for pi, prim := range doc.Meshes[index].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || posIdx < 0 || posIdx >= len(doc.Accessors) {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d positions: %w", index, pi, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return fmt.Errorf("mesh %d primitive %d: indices accessor %d out of range", index, pi, *prim.Indices)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("mesh %d primitive %d indices: %w", index, pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := uint32(len(out.Vertices))
		for _, p := range positions {
			wp := world.TransformPoint(math.V3(p)).Array()
			out.Vertices = append(out.Vertices, Vertex{Position: wp})
			out.Bounds.extend(wp)
		}

		start := int32(len(out.Indices))
		count := len(indices) - len(indices)%3
		for _, i := range indices[:count] {
			if int(i) >= len(positions) {
				return fmt.Errorf("mesh %d primitive %d: index %d beyond %d vertices", index, pi, i, len(positions))
			}
			out.Indices = append(out.Indices, base+i)
		}
		out.addGroup(baseColor(doc, prim.Material), start, int32(count))
	}
	return nil
}

// addGroup merges with the previous group when the colour repeats.
func (m *Mesh) addGroup(color [4]float32, start, count int32) {
	if count == 0 {
		return
	}
	if n := len(m.Groups); n > 0 {
		last := &m.Groups[n-1]
		if last.BaseColor == color && last.StartIndex+last.IndexCount == start {
			last.IndexCount += count
			return
		}
	}
	m.Groups = append(m.Groups, MaterialGroup{BaseColor: color, StartIndex: start, IndexCount: count})
}

func baseColor(doc *gltf.Document, material *int) [4]float32 {
	if material == nil || *material < 0 || *material >= len(doc.Materials) {
		return DefaultBaseColor
	}
	pbr := doc.Materials[*material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return DefaultBaseColor
	}
	f := pbr.BaseColorFactor
	return [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
}

func (b *Bounds) extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
