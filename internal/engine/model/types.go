// Package model flattens glTF binary scenes into a single drawable mesh.
package model

// Vertex is a model vertex in model space with node transforms applied.
type Vertex struct {
	Position [3]float32
}

// MaterialGroup is a run of indices drawn with one material colour.
type MaterialGroup struct {
	BaseColor  [4]float32
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete model ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []MaterialGroup
	Bounds   Bounds
}

// Bounds is the axis-aligned box around every vertex.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// DefaultBaseColor is used for primitives without a material.
var DefaultBaseColor = [4]float32{1, 1, 1, 1}
