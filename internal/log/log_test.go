package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// capture swaps the default slog handler for one writing to a buffer
// and restores it when the test ends.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWriteSuccess(t *testing.T) {
	buf := capture(t)

	Event("cli:preview", "propose").Path("notes.txt").Lines(3).Write(nil)

	out := buf.String()
	for _, want := range []string{"level=INFO", "source=cli:preview", "action=propose", "path=notes.txt", "lines_affected=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestWriteFailure(t *testing.T) {
	buf := capture(t)

	Event("mcp:approve", "approve").Token("abc").Write(errors.New("version conflict"))

	out := buf.String()
	for _, want := range []string{"level=WARN", "token=abc", "error=\"version conflict\""} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestDetail(t *testing.T) {
	buf := capture(t)

	Event("http:propose", "propose").Detail("kind", "replace_lines").Write(nil)

	if out := buf.String(); !strings.Contains(out, "kind=replace_lines") {
		t.Errorf("output missing detail: %s", out)
	}
}
