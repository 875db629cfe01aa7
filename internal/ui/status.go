package ui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

const (
	statusBarHeight  = float32(24)
	notifyDuration   = 2 * time.Second
	defaultStatusMsg = "Drag to rotate, right-drag to pan, scroll to zoom"
)

var errorColor = imgui.NewVec4(1, 0.3, 0.3, 1)

// StatusBar shows the current status line and a short-lived notification.
// Errors stick until cleared by a newer error or ClearError.
type StatusBar struct {
	status string
	err    string

	notify   string
	notifyAt time.Time

	now func() time.Time
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{now: time.Now}
}

// SetStatus replaces the informational message.
func (s *StatusBar) SetStatus(msg string) {
	s.status = msg
}

// SetError shows msg until it is cleared.
func (s *StatusBar) SetError(msg string) {
	s.err = msg
}

// ClearError removes the sticky error.
func (s *StatusBar) ClearError() {
	s.err = ""
}

// Notify shows msg in the corner overlay for two seconds.
func (s *StatusBar) Notify(msg string) {
	s.notify = msg
	s.notifyAt = s.now()
}

// Line returns the text for the status line and whether it is an error.
func (s *StatusBar) Line() (string, bool) {
	if s.err != "" {
		return s.err, true
	}
	if s.status != "" {
		return s.status, false
	}
	return defaultStatusMsg, false
}

// Notification returns the active notification, if any.
func (s *StatusBar) Notification() (string, bool) {
	if s.notify == "" {
		return "", false
	}
	if s.now().Sub(s.notifyAt) >= notifyDuration {
		s.notify = ""
		return "", false
	}
	return s.notify, true
}

// Render draws the status line along the bottom and any notification in the
// top-left corner.
func (s *StatusBar) Render() {
	pos, size := Viewport()

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoCollapse | imgui.WindowFlagsNoFocusOnAppearing

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X, pos.Y+size.Y-statusBarHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X, statusBarHeight))
	imgui.SetNextWindowBgAlpha(0.6)
	if imgui.BeginV("##StatusBar", nil, flags) {
		if msg, isErr := s.Line(); isErr {
			imgui.TextColored(errorColor, msg)
		} else {
			imgui.Text(msg)
		}
	}
	imgui.End()

	if msg, ok := s.Notification(); ok {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(pos.X+10, pos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notify", nil, notifyFlags) {
			imgui.Text(msg)
		}
		imgui.End()
	}
}

// RenderFPS draws the frame rate in the top-left corner, below any
// notification.
func RenderFPS(fps float32) {
	pos, _ := Viewport()
	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+10, pos.Y+50))
	imgui.SetNextWindowBgAlpha(0.5)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##FPS", nil, flags) {
		imgui.Text(FormatFPS(fps))
	}
	imgui.End()
}

// FormatFPS formats a frame rate for the overlay.
func FormatFPS(fps float32) string {
	if fps <= 0 {
		return "FPS: --"
	}
	return fmt.Sprintf("FPS: %.0f (%.1f ms)", fps, 1000/fps)
}
