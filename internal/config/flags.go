package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging and the FPS overlay")
	flagData   = flag.String("data", "", "Directory holding the model and table files")
	flagModel  = flag.String("model", "", "Scene model (.glb) path")
	flagTable  = flag.String("table", "", "Sensor table (.csv) path")
	flagFOV    = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagWidth  = flag.Int("width", 0, "Window width")
	flagHeight = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.View.ShowFPS = true
	}
	if *flagData != "" {
		cfg.Data.Dir = *flagData
	}
	if *flagModel != "" {
		cfg.Data.ModelPath = *flagModel
	}
	if *flagTable != "" {
		cfg.Data.TablePath = *flagTable
	}
	if *flagFOV > 0 {
		cfg.Graphics.FOV = float32(*flagFOV)
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
