package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted after the config file.
const (
	EnvDataDir  = "SENSORLAB_DATA_DIR"
	EnvModel    = "SENSORLAB_MODEL"
	EnvTable    = "SENSORLAB_TABLE"
	EnvLogLevel = "SENSORLAB_LOG_LEVEL"
	EnvLogFile  = "SENSORLAB_LOG_FILE"
)

// Load loads configuration with priority: defaults < file < environment < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search list
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// A missing .env is normal
	_ = godotenv.Load()
	applyEnv(cfg)

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "SensorLab")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "SensorLab")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "sensorlab")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "sensorlab")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv applies SENSORLAB_* overrides. Empty values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Data.ModelPath = v
	}
	if v := os.Getenv(EnvTable); v != "" {
		cfg.Data.TablePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.LogFile = v
	}
}
