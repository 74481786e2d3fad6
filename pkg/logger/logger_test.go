package logger

import (
	"context"
	"testing"
)

func TestNew(t *testing.T) {
	log, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.Logger == nil {
		t.Fatal("New() returned logger without zap core")
	}
}

func TestNewDevelopment(t *testing.T) {
	log, err := NewDevelopment()
	if err != nil {
		t.Fatalf("NewDevelopment() error = %v", err)
	}
	if !log.Core().Enabled(-1) { // zapcore.DebugLevel
		t.Error("development logger should enable debug level")
	}
}

func TestWithContextNoSpan(t *testing.T) {
	log, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if got := log.WithContext(context.Background()); got != log.Logger {
		t.Error("WithContext() without a span should return the plain logger")
	}
}
