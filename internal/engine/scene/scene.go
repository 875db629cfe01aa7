// Package scene renders the lab model and the translucent sensor spheres
// into an offscreen framebuffer.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sensorlab/internal/engine/camera"
	"github.com/Faultbox/sensorlab/internal/engine/framebuffer"
	"github.com/Faultbox/sensorlab/internal/engine/model"
	"github.com/Faultbox/sensorlab/internal/engine/scene/shaders"
	"github.com/Faultbox/sensorlab/internal/engine/shader"
	"github.com/Faultbox/sensorlab/internal/viz"
)

// Config contains scene configuration options.
type Config struct {
	Width      int32
	Height     int32
	Background [3]float32

	ModelScale       float32
	AmbientIntensity float32

	SphereRadius   float32
	SphereSegments int
	SphereOpacity  float32
}

// Scene owns the GL state for one viewport.
type Scene struct {
	config Config

	framebuffer *framebuffer.Framebuffer
	program     *shader.Program

	models  *ModelRenderer
	spheres *SphereRenderer
}

// New creates the framebuffer, shader and sphere mesh. A GL context must be
// current.
func New(cfg Config) (*Scene, error) {
	s := &Scene{config: cfg}

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.program, err = shader.Compile(shaders.UnlitVertexShader, shaders.UnlitFragmentShader)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("unlit shader: %w", err)
	}

	s.models = NewModelRenderer(cfg.ModelScale)
	s.spheres = NewSphereRenderer(cfg.SphereRadius, cfg.SphereSegments)
	return s, nil
}

// SetModel uploads the loaded lab model, replacing any previous one.
func (s *Scene) SetModel(mesh *model.Mesh) {
	s.models.SetMesh(mesh)
}

// Render draws the model, then the anchors as spheres, and returns the colour
// texture. anchors may be nil while the sensor table is loading.
func (s *Scene) Render(cam *camera.OrbitCamera, anchors []*viz.Anchor) uint32 {
	aspect := float32(s.config.Width) / float32(s.config.Height)
	viewProj := cam.Projection(aspect).Mul(cam.ViewMatrix())

	s.framebuffer.Bind()
	defer s.framebuffer.Unbind()

	s.framebuffer.Clear(s.config.Background)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	s.program.Use()
	s.models.Render(s.program, viewProj, s.config.AmbientIntensity)

	if len(anchors) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)

		s.spheres.Render(s.program, viewProj, cam.Position(), anchors, s.config.SphereOpacity)

		gl.Disable(gl.CULL_FACE)
		gl.Disable(gl.BLEND)
	}

	gl.UseProgram(0)
	return s.framebuffer.ColorTexture()
}

// Resize updates the scene dimensions.
func (s *Scene) Resize(width, height int32) {
	if width < 1 || height < 1 {
		return
	}
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

// Size returns the current viewport size.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// Framebuffer returns the offscreen target, used for screenshots.
func (s *Scene) Framebuffer() *framebuffer.Framebuffer {
	return s.framebuffer
}

// Destroy releases all GL resources.
func (s *Scene) Destroy() {
	if s.models != nil {
		s.models.Destroy()
	}
	if s.spheres != nil {
		s.spheres.Destroy()
	}
	if s.program != nil {
		s.program.Delete()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
}
