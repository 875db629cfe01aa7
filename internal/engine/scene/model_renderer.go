package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sensorlab/internal/engine/model"
	"github.com/Faultbox/sensorlab/internal/engine/shader"
	"github.com/Faultbox/sensorlab/pkg/math"
)

// ModelRenderer draws the lab model at the origin, uniformly scaled, shaded
// by ambient light only.
type ModelRenderer struct {
	buffers   *meshBuffers
	groups    []model.MaterialGroup
	transform math.Mat4
}

// NewModelRenderer creates an empty renderer; nothing is drawn until SetMesh.
func NewModelRenderer(scale float32) *ModelRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &ModelRenderer{transform: math.UniformScale(scale)}
}

// SetMesh uploads mesh.
func (mr *ModelRenderer) SetMesh(mesh *model.Mesh) {
	if mr.buffers != nil {
		mr.buffers.destroy()
	}

	positions := make([]float32, 0, len(mesh.Vertices)*3)
	for _, v := range mesh.Vertices {
		positions = append(positions, v.Position[0], v.Position[1], v.Position[2])
	}
	mr.buffers = uploadMesh(positions, mesh.Indices)
	mr.groups = append([]model.MaterialGroup(nil), mesh.Groups...)
}

// Loaded reports whether a mesh is uploaded.
func (mr *ModelRenderer) Loaded() bool {
	return mr.buffers != nil && mr.buffers.vao != 0
}

// Render draws every material group.
func (mr *ModelRenderer) Render(prog *shader.Program, viewProj math.Mat4, ambient float32) {
	if !mr.Loaded() {
		return
	}

	prog.SetMat4("uMVP", viewProj.Mul(mr.transform))
	gl.BindVertexArray(mr.buffers.vao)
	for _, g := range mr.groups {
		prog.SetVec4("uColor", AmbientColor(g.BaseColor, ambient))
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, uintptr(g.StartIndex*4))
	}
	gl.BindVertexArray(0)
}

// Destroy releases the mesh.
func (mr *ModelRenderer) Destroy() {
	if mr.buffers != nil {
		mr.buffers.destroy()
	}
}

// AmbientColor lights a base colour with a white ambient light of the given
// intensity. RGB saturates at 1 and alpha is kept.
func AmbientColor(base [4]float32, intensity float32) [4]float32 {
	out := base
	for i := 0; i < 3; i++ {
		out[i] = min(base[i]*intensity, 1)
	}
	return out
}
