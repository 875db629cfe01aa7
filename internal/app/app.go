// Package app wires configuration, asset loading, the scene and the UI into
// the viewer's frame loop.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/sensorlab/internal/assets"
	"github.com/Faultbox/sensorlab/internal/colormap"
	"github.com/Faultbox/sensorlab/internal/config"
	"github.com/Faultbox/sensorlab/internal/engine/camera"
	"github.com/Faultbox/sensorlab/internal/engine/debug"
	"github.com/Faultbox/sensorlab/internal/engine/model"
	"github.com/Faultbox/sensorlab/internal/engine/scene"
	"github.com/Faultbox/sensorlab/internal/logger"
	"github.com/Faultbox/sensorlab/internal/sensor"
	"github.com/Faultbox/sensorlab/internal/ui"
	"github.com/Faultbox/sensorlab/internal/viz"
	"github.com/Faultbox/sensorlab/pkg/math"
)

const windowTitle = "Sensor Lab"

// App is the running viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	backend *ui.Backend
	scene   *scene.Scene
	camera  *camera.OrbitCamera

	gradient *colormap.Gradient
	view     *viz.ViewState
	assets   *assets.Manager
	loads    *loads

	panel     *ui.Panel
	sceneView *ui.SceneView
	status    *ui.StatusBar
	capture   *debug.ScreenshotCapture

	screenshotRequested bool
	savePaths           chan string
	selectionErr        string

	cancel context.CancelFunc
}

// New opens the window, builds the scene and starts loading the model and the
// sensor table in the background.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:       cfg,
		log:       logger.Named("app"),
		gradient:  colormap.Build(),
		view:      viz.NewViewState(),
		assets:    assets.NewManager(cfg.Data.Dir),
		sceneView: ui.NewSceneView(),
		status:    ui.NewStatusBar(),
		capture:   debug.NewScreenshotCapture(cfg.View.ScreenshotDir, "sensorlab", cfg.View.ScreenshotFormat),
		savePaths: make(chan string, 1),
	}

	var err error
	a.backend, err = ui.NewBackend(windowTitle, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height), cfg.Graphics.Background)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// GL context exists from here on
	a.scene, err = scene.New(sceneConfig(cfg))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	a.camera = newCamera(cfg)

	a.panel = ui.NewPanel(a.view, a.gradient)
	a.panel.ShowLegend = cfg.View.ShowLegend
	a.panel.OnResetCamera = a.camera.Reset
	a.panel.OnScreenshot = func() { a.screenshotRequested = true }
	a.panel.OnSaveAs = a.openSaveDialog
	a.panel.OnSelected = a.attributeSelected
	a.panel.OnError = a.selectionFailed

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.loads = &loads{
		model: model.LoadAsync(ctx, a.assets, cfg.Data.ModelPath),
		data: viz.LoadDataset(ctx, a.assets, cfg.Data.TablePath, cfg.Layout(),
			viz.DefaultAnchorPositions, a.gradient),
	}
	a.status.SetStatus(fmt.Sprintf("Loading %s and %s", cfg.Data.ModelPath, cfg.Data.TablePath))

	a.log.Info("viewer initialized",
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("model", cfg.Data.ModelPath),
		zap.String("table", cfg.Data.TablePath),
		zap.Ints("modules", cfg.Data.EnabledModules),
	)
	return a, nil
}

// newCamera builds the orbit camera from the camera and graphics settings.
func newCamera(cfg *config.Config) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera(math.V3(cfg.Camera.Position), math.V3(cfg.Camera.Target))
	cam.FOV = cfg.Graphics.FOV
	cam.MinDistance = cfg.Camera.MinDistance
	cam.MaxDistance = cfg.Camera.MaxDistance
	cam.ZoomSpeed = cfg.Camera.ZoomSpeed
	cam.Damping = cfg.Camera.Damping
	cam.EnablePan = cfg.Camera.EnablePan
	// Limits changed after the home pose was computed
	cam.Reset()
	return cam
}

func sceneConfig(cfg *config.Config) scene.Config {
	return scene.Config{
		Width:            int32(cfg.Graphics.Width),
		Height:           int32(cfg.Graphics.Height),
		Background:       cfg.Graphics.Background,
		ModelScale:       cfg.Scene.ModelScale,
		AmbientIntensity: cfg.Scene.AmbientIntensity,
		SphereRadius:     cfg.Scene.SphereRadius,
		SphereSegments:   cfg.Scene.SphereSegments,
		SphereOpacity:    cfg.Scene.SphereOpacity,
	}
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	a.backend.Run(a.frame)
	return nil
}

func (a *App) frame() {
	if a.loads.pending() {
		a.loads.poll(a)
	}

	w, h := ui.FramebufferSize()
	a.scene.Resize(w, h)

	a.camera.Update()
	tex := a.scene.Render(a.camera, a.view.Anchors())

	if ui.IsKeyPressed(imgui.KeyF12) {
		a.screenshotRequested = true
	}
	if a.screenshotRequested {
		a.screenshotRequested = false
		a.saveScreenshot("")
	}
	select {
	case path := <-a.savePaths:
		a.saveScreenshot(path)
	default:
	}

	a.sceneView.Render(tex, a.camera)
	a.panel.Render()
	a.status.Render()
	if a.cfg.View.ShowFPS {
		ui.RenderFPS(ui.Framerate())
	}
}

// modelLoaded and datasetLoaded run on the frame loop once the background
// loads finish.
func (a *App) modelLoaded(mesh *model.Mesh) {
	a.scene.SetModel(mesh)
	center := mesh.Bounds.Center()
	a.log.Info("model ready",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("groups", len(mesh.Groups)),
		zap.Float32s("center", center[:]),
		zap.Float32s("min", mesh.Bounds.Min[:]),
		zap.Float32s("max", mesh.Bounds.Max[:]),
	)
}

func (a *App) datasetLoaded(ds *viz.Dataset) error {
	if err := a.view.Attach(ds.Matrix, ds.Anchors); err != nil {
		return err
	}
	a.status.SetStatus(fmt.Sprintf("%d modules, %d attributes", ds.Matrix.Anchors(), ds.Matrix.Attributes()))
	a.setTitle(sensor.Attribute(a.view.Selected()))
	return nil
}

// attributeSelected clears an error left by an earlier rejected selection.
// Load errors stay.
func (a *App) attributeSelected(attr sensor.Attribute) {
	if msg, isErr := a.status.Line(); isErr && msg == a.selectionErr {
		a.status.ClearError()
	}
	a.selectionErr = ""
	a.setTitle(attr)
}

func (a *App) selectionFailed(err error) {
	a.selectionErr = err.Error()
	a.status.SetError(a.selectionErr)
}

func (a *App) setTitle(attr sensor.Attribute) {
	if a.backend != nil {
		a.backend.SetWindowTitle(windowTitleFor(attr))
	}
}

func windowTitleFor(attr sensor.Attribute) string {
	return windowTitle + " - " + attr.String()
}

func (a *App) loadFailed(what string, err error) {
	a.log.Error("load failed", zap.String("asset", what), zap.Error(err))
	a.status.SetError(err.Error())
}

// saveScreenshot reads back the last rendered frame. An empty path saves into
// the screenshot directory under a timestamped name.
func (a *App) saveScreenshot(path string) {
	img := a.scene.Framebuffer().ReadImage()

	var err error
	if path == "" {
		path, err = a.capture.Capture(img)
	} else {
		err = debug.SaveImage(path, img)
	}
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		a.status.SetError(fmt.Sprintf("screenshot: %v", err))
		return
	}

	a.log.Info("screenshot saved", zap.String("path", path))
	a.status.Notify("Saved " + filepath.Base(path))
}

// openSaveDialog asks for a screenshot path without blocking the frame loop.
// The window may only be touched from the main thread, so the chosen path is
// handed back through savePaths.
func (a *App) openSaveDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("PNG image", "png").
			Filter("WebP image", "webp").
			Title("Save screenshot").
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				a.log.Warn("save dialog failed", zap.Error(err))
			}
			return
		}
		if filepath.Ext(filename) == "" {
			filename += "." + a.cfg.View.ScreenshotFormat
		}

		select {
		case a.savePaths <- filename:
		default:
			a.log.Warn("screenshot already pending, dropping", zap.String("path", filename))
		}
	}()
}

// Close stops pending loads and releases GL resources and the window. It is
// safe on a partly built App.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.panel != nil {
		a.panel.Destroy()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.backend != nil {
		a.backend.Close()
	}

	hits, misses := a.assets.Stats()
	a.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	a.assets.Close()
}
