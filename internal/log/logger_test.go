package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"firestige.xyz/plipbox/internal/config"
)

func TestParseLevelValid(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLevel(tt.input)
			if err != nil {
				t.Errorf("parseLevel(%q) returned error: %v", tt.input, err)
			}
			if level != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestParseLevelInvalid(t *testing.T) {
	for _, input := range []string{"invalid", "trace", ""} {
		t.Run(input, func(t *testing.T) {
			if _, err := parseLevel(input); err == nil {
				t.Errorf("parseLevel(%q) should return error, got nil", input)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogConfig{Level: "warn", Format: "text"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("frame classified", "class", "for-me")
	logger.Warn("frame truncated", "len", 9)

	output := buf.String()
	if strings.Contains(output, "frame classified") {
		t.Error("Info message should be filtered out")
	}
	if !strings.Contains(output, "frame truncated") || !strings.Contains(output, "len=9") {
		t.Errorf("Warn message missing, got %q", output)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogConfig{Level: "info", Format: "JSON"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("eth", "frame", "[0046:0x0800,11:22:33:44:55:66->aa:bb:cc:dd:ee:ff]")

	output := buf.String()
	if !strings.Contains(output, `"msg":"eth"`) {
		t.Errorf("JSON output should contain message field, got %q", output)
	}
	if !strings.Contains(output, `"frame":"[0046:0x0800,11:22:33:44:55:66->aa:bb:cc:dd:ee:ff]"`) {
		t.Errorf("JSON output should contain frame field, got %q", output)
	}
}

func TestInitStderrOnly(t *testing.T) {
	if err := Init(config.LogConfig{Level: "info", Format: "json"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if slog.Default() == nil {
		t.Fatal("Expected logger to be set, got nil")
	}
}

func TestInitWithFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	cfg := config.LogConfig{
		Level:  "debug",
		Format: "text",
		Outputs: config.LogOutputsConfig{
			File: config.FileOutputConfig{
				Enabled: true,
				Path:    logPath,
				Rotation: config.RotationConfig{
					MaxSizeMB:  10,
					MaxBackups: 3,
					MaxAgeDays: 7,
				},
			},
		},
	}

	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Info("test message", "key", "value")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Log file was not created at %s: %v", logPath, err)
	}
	if !strings.Contains(string(data), "key=value") {
		t.Errorf("Log file should contain the message, got %q", data)
	}
}

func TestInitWithInvalidLevel(t *testing.T) {
	err := Init(config.LogConfig{Level: "invalid", Format: "json"})
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Expected error about invalid log level, got: %v", err)
	}
}

func TestInitWithInvalidFormat(t *testing.T) {
	err := Init(config.LogConfig{Level: "info", Format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "unsupported log format") {
		t.Errorf("Expected error about unsupported format, got: %v", err)
	}
}

func TestInitWithMissingFilePath(t *testing.T) {
	cfg := config.LogConfig{
		Level:  "info",
		Format: "json",
		Outputs: config.LogOutputsConfig{
			File: config.FileOutputConfig{Enabled: true},
		},
	}

	err := Init(cfg)
	if err == nil || !strings.Contains(err.Error(), "path") {
		t.Errorf("Expected error about missing path, got: %v", err)
	}
}
