package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/sensorlab/internal/colormap"
	"github.com/Faultbox/sensorlab/internal/logger"
	"github.com/Faultbox/sensorlab/internal/sensor"
	"github.com/Faultbox/sensorlab/internal/viz"
)

const (
	panelWidth   = float32(260)
	panelMargin  = float32(10)
	loadingLabel = "Loading..."
)

// Panel is the settings window in the top-right corner: camera reset, the
// attribute selector, the legend and screenshot buttons.
type Panel struct {
	view     *viz.ViewState
	gradient *colormap.Gradient
	legend   *backend.Texture

	ShowLegend bool

	OnResetCamera func()
	OnScreenshot  func()
	OnSaveAs      func()
	OnSelected    func(sensor.Attribute)
	OnError       func(error)
}

// NewPanel creates a panel driving view. gradient is drawn as the legend.
func NewPanel(view *viz.ViewState, gradient *colormap.Gradient) *Panel {
	return &Panel{
		view:       view,
		gradient:   gradient,
		ShowLegend: true,
	}
}

// Choose selects attribute attr. Errors go to OnError as well as the caller;
// success is reported to OnSelected.
func (p *Panel) Choose(attr int) error {
	if err := p.view.Select(attr); err != nil {
		logger.Warn("attribute selection rejected", zap.Int("index", attr), zap.Error(err))
		if p.OnError != nil {
			p.OnError(err)
		}
		return err
	}
	if p.OnSelected != nil {
		p.OnSelected(sensor.Attribute(attr))
	}
	return nil
}

// Preview is the text shown in the closed selector.
func (p *Panel) Preview() string {
	if !p.view.Ready() {
		return loadingLabel
	}
	return sensor.Attribute(p.view.Selected()).String()
}

// Render draws the panel.
func (p *Panel) Render() {
	pos, size := Viewport()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+size.X-panelWidth-panelMargin, pos.Y+panelMargin))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, 0))
	imgui.SetNextWindowBgAlpha(0.85)

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoCollapse | imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("Settings", nil, flags) {
		if imgui.Button("Reset Camera") && p.OnResetCamera != nil {
			p.OnResetCamera()
		}

		imgui.Separator()
		p.renderSelector()

		if p.ShowLegend {
			imgui.Separator()
			p.renderLegend()
		}

		if p.view.Ready() {
			imgui.Separator()
			p.renderAnchors()
		}

		imgui.Separator()
		if imgui.Button("Screenshot") && p.OnScreenshot != nil {
			p.OnScreenshot()
		}
		imgui.SameLine()
		if imgui.Button("Save as...") && p.OnSaveAs != nil {
			p.OnSaveAs()
		}
		imgui.SameLine()
		imgui.TextDisabled("(F12)")
	}
	imgui.End()
}

// renderSelector stays disabled until the colour matrix is attached.
func (p *Panel) renderSelector() {
	imgui.Text("Attribute")
	imgui.BeginDisabledV(!p.view.Ready())
	imgui.SetNextItemWidth(-1)
	if imgui.BeginCombo("##attribute", p.Preview()) {
		selected := p.view.Selected()
		for _, attr := range sensor.Attributes() {
			isSelected := int(attr) == selected
			if imgui.SelectableBoolV(attr.String(), isSelected, 0, imgui.NewVec2(0, 0)) && !isSelected {
				_ = p.Choose(int(attr))
			}
		}
		imgui.EndCombo()
	}
	imgui.EndDisabled()
}

func (p *Panel) renderLegend() {
	if p.legend == nil {
		p.legend = backend.NewTextureFromRgba(p.gradient.Legend(colormap.Width, colormap.LegendHeight))
	}

	w := imgui.ContentRegionAvail().X
	imgui.ImageWithBgV(
		p.legend.ID,
		imgui.NewVec2(w, 16),
		imgui.NewVec2(0, 0),
		imgui.NewVec2(1, 1),
		imgui.NewVec4(0, 0, 0, 0),
		imgui.NewVec4(1, 1, 1, 1),
	)
	imgui.TextDisabled("0.0 (good) .. 1.0 (bad)")
}

func (p *Panel) renderAnchors() {
	for _, a := range p.view.Anchors() {
		r, g, b := a.Color.Clamped().RGB255()
		col := imgui.NewVec4(float32(r)/255, float32(g)/255, float32(b)/255, 1)
		imgui.TextColored(col, fmt.Sprintf("Module %d  #%02x%02x%02x", a.Module, r, g, b))
	}
}

// Destroy releases the legend texture.
func (p *Panel) Destroy() {
	if p.legend != nil {
		p.legend.Release()
		p.legend = nil
	}
}
