// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sensorlab/internal/logger"
	"github.com/Faultbox/sensorlab/internal/sensor"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Data     DataConfig     `yaml:"data"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	View     ViewConfig     `yaml:"view"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	FOV        float32    `yaml:"fov"`        // Vertical field of view, degrees
	Background [3]float32 `yaml:"background"` // Clear colour, 0..1 per channel
}

// DataConfig locates the scene model and the sensor table.
type DataConfig struct {
	Dir             string `yaml:"dir"`
	ModelPath       string `yaml:"model_path"`
	TablePath       string `yaml:"table_path"`
	EnabledModules  []int  `yaml:"enabled_modules"` // Table rows, one per anchor
	FieldDelimiter  string `yaml:"field_delimiter"`
	RecordDelimiter string `yaml:"record_delimiter"`
}

// SceneConfig holds model placement and anchor sphere appearance.
type SceneConfig struct {
	ModelScale       float32 `yaml:"model_scale"`
	SphereRadius     float32 `yaml:"sphere_radius"`
	SphereSegments   int     `yaml:"sphere_segments"`
	SphereOpacity    float32 `yaml:"sphere_opacity"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`
}

// CameraConfig holds the home pose and orbit control limits.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	ZoomSpeed   float32    `yaml:"zoom_speed"`
	Damping     float32    `yaml:"damping"` // 0 disables damping
	EnablePan   bool       `yaml:"enable_pan"`
}

// ViewConfig holds overlay and screenshot settings.
type ViewConfig struct {
	ShowFPS          bool   `yaml:"show_fps"`
	ShowLegend       bool   `yaml:"show_legend"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the lab demo setup.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			FOV:        75,
			Background: [3]float32{0xb0 / 255.0, 0xb0 / 255.0, 0xb0 / 255.0},
		},
		Data: DataConfig{
			Dir:             ".",
			ModelPath:       "fyp_lab.glb",
			TablePath:       "Output.csv",
			EnabledModules:  append([]int(nil), sensor.DefaultEnabledModules...),
			FieldDelimiter:  sensor.DefaultFieldDelimiter,
			RecordDelimiter: sensor.DefaultRecordDelimiter,
		},
		Scene: SceneConfig{
			ModelScale:       5,
			SphereRadius:     10,
			SphereSegments:   16,
			SphereOpacity:    0.5,
			AmbientIntensity: 5,
		},
		Camera: CameraConfig{
			Position:    [3]float32{40, 40, 0},
			Target:      [3]float32{0, 0, 0},
			MinDistance: 10,
			MaxDistance: 100,
			ZoomSpeed:   1.5,
			Damping:     0.05,
			EnablePan:   true,
		},
		View: ViewConfig{
			ShowFPS:          false,
			ShowLegend:       true,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Layout returns the table layout described by the data section.
func (c *Config) Layout() sensor.Layout {
	return sensor.Layout{
		Rows:            c.Data.EnabledModules,
		FieldDelimiter:  c.Data.FieldDelimiter,
		RecordDelimiter: c.Data.RecordDelimiter,
		Fields:          int(sensor.NumAttributes),
	}
}

// Validate reports every setting that would make the viewer misbehave.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov %.1f out of range (0, 180)", c.Graphics.FOV))
	}
	if len(c.Data.EnabledModules) == 0 {
		errs = append(errs, errors.New("data: enabled_modules is empty"))
	}
	for _, row := range c.Data.EnabledModules {
		if row < 0 {
			errs = append(errs, fmt.Errorf("data: enabled module row %d is negative", row))
		}
	}
	if c.Data.FieldDelimiter == "" || c.Data.RecordDelimiter == "" {
		errs = append(errs, errors.New("data: delimiters must not be empty"))
	}
	if c.Scene.SphereRadius <= 0 {
		errs = append(errs, fmt.Errorf("scene: sphere_radius %.2f must be positive", c.Scene.SphereRadius))
	}
	if c.Scene.SphereSegments < 3 {
		errs = append(errs, fmt.Errorf("scene: sphere_segments %d must be at least 3", c.Scene.SphereSegments))
	}
	if c.Scene.SphereOpacity <= 0 || c.Scene.SphereOpacity > 1 {
		errs = append(errs, fmt.Errorf("scene: sphere_opacity %.2f out of range (0, 1]", c.Scene.SphereOpacity))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera: distance range [%.1f, %.1f] is invalid", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.Damping < 0 || c.Camera.Damping >= 1 {
		errs = append(errs, fmt.Errorf("camera: damping %.2f out of range [0, 1)", c.Camera.Damping))
	}
	switch c.View.ScreenshotFormat {
	case "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("view: unknown screenshot_format %q", c.View.ScreenshotFormat))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}
