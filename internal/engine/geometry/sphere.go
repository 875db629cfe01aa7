// Package geometry builds procedural meshes.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/sensorlab/pkg/math"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Positions []math.Vec3
	Indices   []uint32
}

// Sphere returns a UV sphere centred on the origin. It has (w+1)*(h+1)
// vertices, with a duplicated seam column, and skips the degenerate triangle
// of each quad at the poles.
func Sphere(radius float32, widthSegments, heightSegments int) Mesh {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	var m Mesh
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * gomath.Pi
		row := make([]uint32, widthSegments+1)

		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * gomath.Pi

			n := math.Vec3{
				X: float32(-gomath.Cos(phi) * gomath.Sin(theta)),
				Y: float32(gomath.Cos(theta)),
				Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			row[ix] = uint32(len(m.Positions))
			m.Positions = append(m.Positions, n.Scale(radius))
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}

// Flat packs positions as x,y,z per vertex for upload.
func (m Mesh) Flat() []float32 {
	out := make([]float32, 0, len(m.Positions)*3)
	for _, p := range m.Positions {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}
