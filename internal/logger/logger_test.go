package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

			if err := Setup(tt.level, cfg, false); err != nil {
				t.Fatalf("Setup: %v", err)
			}

			Debug("debug message")
			Info("info message", zap.Int("attribute", 3))
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("read log file: %v", err)
			}
			out := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestStructuredFieldsReachFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "fields.log")
	if err := Setup("info", FileConfig{Path: logFile, MaxSizeMB: 1}, false); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	Named("viz").Info("attribute selected", zap.String("label", "Co2"))
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(content)
	if !strings.Contains(out, "viz") {
		t.Errorf("expected logger name in output, got %q", out)
	}
	if !strings.Contains(out, `"label": "Co2"`) {
		t.Errorf("expected label field in output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"", "debug", "info", "warn", "error"} {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ParseLevel(%q): unexpected error %v", name, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup("loud", FileConfig{}, false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/sensorlab.log")

	if cfg.Path != "/tmp/sensorlab.log" {
		t.Errorf("expected path /tmp/sensorlab.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 10 {
		t.Errorf("expected MaxSizeMB 10, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestNopLoggerBeforeInit(t *testing.T) {
	// The zero-config logger must never panic.
	Log = zap.NewNop()
	Sugar = Log.Sugar()
	Info("ignored")
	Sugar.Debugf("ignored %d", 1)
}
