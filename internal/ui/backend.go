// Package ui provides the ImGui window, settings panel and overlays.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend opens the window and initialises OpenGL. bg is the colour shown
// behind the scene before the first frame.
func NewBackend(title string, width, height int32, bg [3]float32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		imgui.StyleColorsDark()
	})

	b.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Close asks the backend to close the window.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// Viewport returns the main viewport work area.
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// FramebufferSize returns the display size in pixels, which differs from the
// ImGui size on high-DPI screens.
func FramebufferSize() (width, height int32) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return PixelSize(size.X, size.Y, scale.X, scale.Y)
}

// PixelSize converts a size in points to pixels. A zero scale counts as 1.
func PixelSize(w, h, scaleX, scaleY float32) (int32, int32) {
	if scaleX <= 0 {
		scaleX = 1
	}
	if scaleY <= 0 {
		scaleY = 1
	}
	return int32(w*scaleX + 0.5), int32(h*scaleY + 0.5)
}

// Framerate returns the ImGui frame rate estimate.
func Framerate() float32 {
	return imgui.CurrentIO().Framerate()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
