package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapterWithLogger(zerolog.New(&buf))

	l.Warn("violation",
		String("op", "pop"),
		Int("depth", 3),
		Uint("id", 7),
		Bool("virtual", true),
		Err(errors.New("boom")),
		Any("extra", []int{1, 2}),
	)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if got["level"] != "warn" {
		t.Errorf("level = %v, want warn", got["level"])
	}
	if got["message"] != "violation" {
		t.Errorf("message = %v, want violation", got["message"])
	}
	if got["op"] != "pop" {
		t.Errorf("op = %v, want pop", got["op"])
	}
	if got["depth"] != float64(3) {
		t.Errorf("depth = %v, want 3", got["depth"])
	}
	if got["id"] != float64(7) {
		t.Errorf("id = %v, want 7", got["id"])
	}
	if got["virtual"] != true {
		t.Errorf("virtual = %v, want true", got["virtual"])
	}
	if got["error"] != "boom" {
		t.Errorf("error = %v, want boom", got["error"])
	}
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}

	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, zerolog.InfoLevel, false)

	l.Info("ready", Int("capacity", 3))

	out := buf.String()
	if !strings.Contains(out, "ready") || !strings.Contains(out, "capacity=3") {
		t.Errorf("console output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color escapes, got %q", out)
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x", Err(errors.New("y")))
	l.Error("x")
}
