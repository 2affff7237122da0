package logger

import (
	"os"
	"sync/atomic"
	"testing"
)

func TestWithComponent(t *testing.T) {
	log := Logger()
	entry := log.WithComponent("test")
	if v, ok := entry.Entry.Data["component"]; !ok || v != "test" {
		t.Fatalf("component field missing: %v", entry.Entry.Data)
	}
}

func TestConfigureInvalidLevel(t *testing.T) {
	// Ensure environment variables do not override the provided level
	t.Setenv("LOG_LEVEL", "")

	log := Logger()
	if err := log.Configure("invalid", "json", "stderr", 0); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestDefaultOutputIsStderr(t *testing.T) {
	log := Logger()
	if log.Logger.Out != os.Stderr {
		t.Fatalf("default output must be stderr, stdout belongs to the MCP transport")
	}
}

func TestWithEnv(t *testing.T) {
	os.Setenv("FOO", "bar")
	log := Logger()
	entry := log.WithEnv("FOO")
	if v, ok := entry.Entry.Data["FOO"]; !ok || v != "bar" {
		t.Fatalf("env field not set: %v", entry.Entry.Data)
	}
}

func TestIncrementToolCall(t *testing.T) {
	before := atomic.LoadInt64(&toolCalls)
	IncrementToolCall(128)
	if got := atomic.LoadInt64(&toolCalls); got != before+1 {
		t.Fatalf("tool call counter not incremented: %d -> %d", before, got)
	}
}
