package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		enabled bool
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, true, false},
		{"INFO", zapcore.InfoLevel, true, false},
		{"warning", zapcore.WarnLevel, true, false},
		{"error", zapcore.ErrorLevel, true, false},
		{"off", zapcore.InfoLevel, false, false},
		{"loud", zapcore.InfoLevel, false, true},
	}
	for _, tt := range tests {
		got, enabled, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want || enabled != tt.enabled {
			t.Fatalf("ParseLevel(%q) = %v, %v, want %v, %v", tt.in, got, enabled, tt.want, tt.enabled)
		}
	}
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "error")
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() err = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn enabled with level error")
	}
	if !GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error disabled with level error")
	}
}

func TestInitializeRejectsUnknownLevel(t *testing.T) {
	if err := Initialize("loud"); err == nil {
		t.Fatalf("Initialize(loud) err = nil")
	}
}

func TestSilent(t *testing.T) {
	if err := Initialize("off"); err != nil {
		t.Fatalf("Initialize(off) err = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("silent logger enabled")
	}
	Named("kernel").Error("dropped")
}
