package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var recs []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line %q is not one JSON object: %v", line, err)
		}
		recs = append(recs, m)
	}
	return recs
}

func TestOneRecordPerLine(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("turn submitted", "turn", 3, "elapsed", "12ms")
	log.With("session", "abc").WithGroup("plan").Warn("short on bits", "mp", 1.5, "error", errors.New("boom"))

	recs := decodeLines(t, buf.String())
	if len(recs) != 2 {
		t.Fatalf("records=%d want=2\n%s", len(recs), buf.String())
	}
	if recs[0]["msg"] != "turn submitted" || recs[0]["turn"] != float64(3) {
		t.Fatalf("first=%v", recs[0])
	}
	if recs[1]["level"] != "WARN" || recs[1]["session"] != "abc" {
		t.Fatalf("second=%v", recs[1])
	}
	plan, ok := recs[1]["plan"].(map[string]any)
	if !ok {
		t.Fatalf("plan group missing: %v", recs[1])
	}
	if plan["mp"] != 1.5 || plan["error"] != "boom" {
		t.Fatalf("plan=%v", plan)
	}
}

func TestIndentAndSource(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewJSONHandler(&buf, &Options{Level: slog.LevelDebug, AddSource: true, Indent: true}))
	log.Debug("hello", slog.Group("", slog.Int("inlined", 1)))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if strings.Count(buf.String(), "\n") < 3 {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
	if src, _ := m["source"].(string); !strings.HasPrefix(src, "handler_test.go:") {
		t.Fatalf("source=%v", m["source"])
	}
	if m["inlined"] != float64(1) {
		t.Fatalf("inlined=%v", m["inlined"])
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want=%v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
