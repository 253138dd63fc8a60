package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerTagsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentHTTP, Output: &buf})

	l.Info("hello", "k", "v")
	line := buf.String()
	if !strings.Contains(line, "component=http") || !strings.Contains(line, "k=v") {
		t.Fatalf("unexpected output: %q", line)
	}

	buf.Reset()
	l.With(FieldSessionID, "s1").WithComponent(ComponentSession).Info("switched")
	line = buf.String()
	if strings.Count(line, "component=") != 1 || !strings.Contains(line, "component=session") {
		t.Fatalf("component should be replaced, got %q", line)
	}
	if !strings.Contains(line, "session_id=s1") {
		t.Fatalf("attributes set before WithComponent were lost: %q", line)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %q", buf.String())
	}
	if l.Component() != ComponentApp {
		t.Fatalf("default component = %q", l.Component())
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithSession("abc").
		WithTransaction("2024-01-01", "Income", "Salary", 5000).
		WithOperation(OpAppend).
		WithError(errors.New("boom"))
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice length mismatch")
	}
	if f[FieldAmount] != int64(5000) || f[FieldError] != "boom" {
		t.Fatalf("unexpected fields: %v", f)
	}
	if _, ok := NewFields().WithError(nil)[FieldError]; ok {
		t.Fatalf("nil error must not add a field")
	}
}
