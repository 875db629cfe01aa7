package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/sensorlab/internal/assets"
	"github.com/Faultbox/sensorlab/pkg/math"
)

// triangleDoc returns a document with one red triangle under a parent node
// that moves it by +10 on X and a child node that doubles its size.
func triangleDoc() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "parent", Translation: [3]float64{10, 0, 0}, Children: []int{1}},
		{Name: "child", Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestBuildMesh(t *testing.T) {
	mesh, err := BuildMesh(triangleDoc())
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}

	if len(mesh.Vertices) != 3 || len(mesh.Indices) != 3 {
		t.Fatalf("expected 3 vertices and indices, got %d and %d", len(mesh.Vertices), len(mesh.Indices))
	}

	want := [][3]float32{{10, 0, 0}, {12, 0, 0}, {10, 2, 0}}
	for i, w := range want {
		if mesh.Vertices[i].Position != w {
			t.Errorf("vertex %d = %v, want %v", i, mesh.Vertices[i].Position, w)
		}
	}

	if mesh.Bounds.Min != [3]float32{10, 0, 0} || mesh.Bounds.Max != [3]float32{12, 2, 0} {
		t.Errorf("unexpected bounds %+v", mesh.Bounds)
	}
	if c := mesh.Bounds.Center(); c != [3]float32{11, 1, 0} {
		t.Errorf("center = %v", c)
	}

	if len(mesh.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(mesh.Groups))
	}
	g := mesh.Groups[0]
	if g.BaseColor != [4]float32{1, 0, 0, 1} || g.StartIndex != 0 || g.IndexCount != 3 {
		t.Errorf("unexpected group %+v", g)
	}
}

func TestBuildMeshMergesGroups(t *testing.T) {
	doc := triangleDoc()
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "second", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = []int{0, 2}

	mesh, err := BuildMesh(doc)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if len(mesh.Vertices) != 6 || len(mesh.Indices) != 6 {
		t.Fatalf("expected two triangles, got %d vertices", len(mesh.Vertices))
	}
	if mesh.Indices[3] != 3 {
		t.Errorf("second instance indices should be rebased, got %v", mesh.Indices)
	}
	if len(mesh.Groups) != 1 || mesh.Groups[0].IndexCount != 6 {
		t.Errorf("same material should share one group, got %+v", mesh.Groups)
	}
}

func TestBuildMeshDefaultMaterial(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives[0].Material = nil

	mesh, err := BuildMesh(doc)
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if mesh.Groups[0].BaseColor != DefaultBaseColor {
		t.Errorf("expected default colour, got %v", mesh.Groups[0].BaseColor)
	}
}

func TestBuildMeshBadNode(t *testing.T) {
	doc := triangleDoc()
	doc.Scenes[0].Nodes = []int{7}
	if _, err := BuildMesh(doc); err == nil {
		t.Error("expected error for a missing node")
	}
}

func TestBuildMeshEmpty(t *testing.T) {
	mesh, err := BuildMesh(gltf.NewDocument())
	if err != nil {
		t.Fatalf("BuildMesh: %v", err)
	}
	if len(mesh.Vertices) != 0 || mesh.Bounds != (Bounds{}) {
		t.Errorf("expected empty mesh with zero bounds, got %+v", mesh.Bounds)
	}
}

func TestLocalMatrix(t *testing.T) {
	// 90 degrees about +Y takes +X to -Z
	halfSqrt2 := 0.7071067811865476

	tests := []struct {
		name string
		node *gltf.Node
		in   math.Vec3
		want math.Vec3
	}{
		{"unset transform", &gltf.Node{}, math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 1, Y: 2, Z: 3}},
		{"translation only", &gltf.Node{Translation: [3]float64{0, 5, 0}}, math.Vec3{X: 1}, math.Vec3{X: 1, Y: 5}},
		{
			name: "rotation and scale",
			node: &gltf.Node{Rotation: [4]float64{0, halfSqrt2, 0, halfSqrt2}, Scale: [3]float64{3, 3, 3}},
			in:   math.Vec3{X: 1},
			want: math.Vec3{Z: -3},
		},
		{
			name: "explicit matrix",
			node: &gltf.Node{
				Matrix:      [16]float64{2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 1, 1, 1, 1},
				Translation: [3]float64{100, 100, 100},
			},
			in:   math.Vec3{X: 1},
			want: math.Vec3{X: 3, Y: 1, Z: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := localMatrix(tt.node).TransformPoint(tt.in)
			if got.Distance(tt.want) > 1e-4 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not a model")); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadAsyncErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.glb"), []byte("glTF?"), 0644); err != nil {
		t.Fatal(err)
	}
	mgr := assets.NewManager(dir)

	for _, name := range []string{"broken.glb", "missing.glb"} {
		_, err := LoadAsync(context.Background(), mgr, name).Wait(context.Background())
		var loadErr *assets.AssetLoadError
		if !errors.As(err, &loadErr) || loadErr.Kind != assets.KindModel {
			t.Errorf("%s: expected model AssetLoadError, got %v", name, err)
		}
	}
}
