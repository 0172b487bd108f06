package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_TextWithComponent(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(slog.LevelInfo, "text", &buf)

	New("engine").Info("rule applied", "rule", "rule1")
	New("engine").Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "component=engine") || !strings.Contains(out, "rule=rule1") {
		t.Errorf("unexpected log output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
}

func TestInit_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(slog.LevelDebug, "json", &buf)
	New("store").Debug("saved")

	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile(\"\"): %v", err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Errorf("discard write: %v", err)
	}
	w.Close()

	path := filepath.Join(t.TempDir(), "miu.log")
	w, err = OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile(%q): %v", path, err)
	}
	defer w.Close()
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Errorf("file write: %v", err)
	}
}
