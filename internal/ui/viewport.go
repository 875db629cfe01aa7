package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// CameraControls is the part of the orbit camera driven by the mouse.
type CameraControls interface {
	HandleDrag(deltaX, deltaY float32)
	HandlePan(deltaX, deltaY, viewportHeight float32)
	HandleZoom(steps float32)
}

// PointerState is one frame of mouse input over the scene image.
type PointerState struct {
	Hovered   bool
	LeftDown  bool
	RightDown bool
	DeltaX    float32
	DeltaY    float32
	Wheel     float32
	Height    float32 // Scene image height in the same units as the deltas
}

// Apply feeds the pointer to the camera. Left drag rotates, right drag pans
// and the wheel zooms. Nothing happens unless the scene is hovered.
func (p PointerState) Apply(cam CameraControls) {
	if !p.Hovered {
		return
	}
	if p.DeltaX != 0 || p.DeltaY != 0 {
		switch {
		case p.LeftDown:
			cam.HandleDrag(p.DeltaX, p.DeltaY)
		case p.RightDown:
			cam.HandlePan(p.DeltaX, p.DeltaY, p.Height)
		}
	}
	if p.Wheel != 0 {
		cam.HandleZoom(p.Wheel)
	}
}

// SceneView draws the rendered scene across the whole window and turns mouse
// input over it into camera motion.
type SceneView struct {
	lastX, lastY float32
	tracking     bool
}

// NewSceneView creates a scene view.
func NewSceneView() *SceneView {
	return &SceneView{}
}

// track returns the pointer movement since the previous call. The first
// sample after a gap yields no movement.
func (v *SceneView) track(x, y float32, active bool) (dx, dy float32) {
	if !active {
		v.tracking = false
		return 0, 0
	}
	if v.tracking {
		dx, dy = x-v.lastX, y-v.lastY
	}
	v.lastX, v.lastY = x, y
	v.tracking = true
	return dx, dy
}

// Render draws textureID behind every other window and applies this frame's
// mouse input to cam.
func (v *SceneView) Render(textureID uint32, cam CameraControls) {
	pos, size := Viewport()

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoCollapse

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) && textureID != 0 {
		// Flip V for OpenGL
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageWithBgV(
			*texRef,
			size,
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 0),
			imgui.NewVec4(1, 1, 1, 1),
		)

		hovered := imgui.IsItemHovered()
		left := imgui.IsMouseDragging(imgui.MouseButtonLeft)
		right := imgui.IsMouseDown(imgui.MouseButtonRight)

		mouse := imgui.MousePos()
		dx, dy := v.track(mouse.X, mouse.Y, hovered && (left || right))

		PointerState{
			Hovered:   hovered,
			LeftDown:  left,
			RightDown: right,
			DeltaX:    dx,
			DeltaY:    dy,
			Wheel:     imgui.CurrentIO().MouseWheel(),
			Height:    size.Y,
		}.Apply(cam)
	}
	imgui.End()
	imgui.PopStyleVar()
}
