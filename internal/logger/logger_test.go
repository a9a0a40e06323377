package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
			excluded: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			rot := RotationConfig{
				Path:       logFile,
				MaxSizeMB:  10,
				MaxBackups: 1,
				MaxAgeDays: 1,
			}
			if err := Setup(tt.level, rot, false); err != nil {
				t.Fatalf("failed to set up logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
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

func TestNamed(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := Setup("info", RotationConfig{Path: logFile, MaxSizeMB: 10}, false); err != nil {
		t.Fatalf("failed to set up logger: %v", err)
	}

	Named("viewer").Info("scene activated")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "viewer") {
		t.Error("expected subsystem name in log output")
	}
}

func TestDefaultRotation(t *testing.T) {
	rot := DefaultRotation("/tmp/viewer.log")

	if rot.Path != "/tmp/viewer.log" {
		t.Errorf("expected path /tmp/viewer.log, got %s", rot.Path)
	}
	if rot.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", rot.MaxSizeMB)
	}
	if rot.MaxBackups != 2 {
		t.Errorf("expected MaxBackups 2, got %d", rot.MaxBackups)
	}
	if !rot.Compress {
		t.Error("expected Compress to be true")
	}
}
