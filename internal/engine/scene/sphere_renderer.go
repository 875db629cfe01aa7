package scene

import (
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sensorlab/internal/engine/geometry"
	"github.com/Faultbox/sensorlab/internal/engine/shader"
	"github.com/Faultbox/sensorlab/internal/viz"
	"github.com/Faultbox/sensorlab/pkg/math"
)

// SphereRenderer draws one translucent sphere per anchor in its current
// colour.
type SphereRenderer struct {
	buffers *meshBuffers
}

// NewSphereRenderer uploads the shared sphere mesh.
func NewSphereRenderer(radius float32, segments int) *SphereRenderer {
	mesh := geometry.Sphere(radius, segments, segments)
	return &SphereRenderer{buffers: uploadMesh(mesh.Flat(), mesh.Indices)}
}

// Render draws the anchors far to near so overlapping spheres blend in the
// right order. Blending must be enabled by the caller.
func (sr *SphereRenderer) Render(prog *shader.Program, viewProj math.Mat4, eye math.Vec3, anchors []*viz.Anchor, opacity float32) {
	if sr.buffers.vao == 0 {
		return
	}

	gl.BindVertexArray(sr.buffers.vao)
	for _, a := range BackToFront(anchors, eye) {
		prog.SetMat4("uMVP", viewProj.Mul(math.Translate(a.Position)))
		prog.SetVec4("uColor", [4]float32{float32(a.Color.R), float32(a.Color.G), float32(a.Color.B), opacity})
		gl.DrawElements(gl.TRIANGLES, sr.buffers.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// Destroy releases the mesh.
func (sr *SphereRenderer) Destroy() {
	sr.buffers.destroy()
}

// BackToFront returns the anchors ordered by decreasing distance from eye.
// The input slice is not reordered.
func BackToFront(anchors []*viz.Anchor, eye math.Vec3) []*viz.Anchor {
	sorted := append([]*viz.Anchor(nil), anchors...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position.Distance(eye) > sorted[j].Position.Distance(eye)
	})
	return sorted
}
