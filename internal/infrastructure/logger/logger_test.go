package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	prod, err := New("production")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prod.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("production logger should not log debug")
	}

	dev, err := New("development")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dev.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("development logger should log debug")
	}
}
