package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}

	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		level    LogLevel
		logAt    func(zerolog.Logger, string)
		testMsg  string
		contains bool
	}{
		{
			name:     "info_level_logs_info",
			level:    LevelInfo,
			logAt:    func(l zerolog.Logger, msg string) { l.Info().Msg(msg) },
			testMsg:  "test info message",
			contains: true,
		},
		{
			name:     "info_level_drops_debug",
			level:    LevelInfo,
			logAt:    func(l zerolog.Logger, msg string) { l.Debug().Msg(msg) },
			testMsg:  "test debug message",
			contains: false,
		},
		{
			name:     "debug_level_logs_debug",
			level:    LevelDebug,
			logAt:    func(l zerolog.Logger, msg string) { l.Debug().Msg(msg) },
			testMsg:  "test debug message",
			contains: true,
		},
		{
			name:     "warn_level_drops_info",
			level:    LevelWarn,
			logAt:    func(l zerolog.Logger, msg string) { l.Info().Msg(msg) },
			testMsg:  "test info message",
			contains: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Setup(Config{Level: tt.level, Output: &buf})

			tt.logAt(logger, tt.testMsg)

			got := strings.Contains(buf.String(), tt.testMsg)
			if got != tt.contains {
				t.Errorf("output contains %q = %v, want %v (output: %s)",
					tt.testMsg, got, tt.contains, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
		{"DEBUG", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelInfo, Output: &buf})

	logger := NewLogger("cache")
	logger.Info().Msg("component test")

	if !strings.Contains(buf.String(), `"component":"cache"`) {
		t.Errorf("expected component field in output, got %s", buf.String())
	}
}
