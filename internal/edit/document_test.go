package edit

import "testing"

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"single line no newline", "hello"},
		{"single line with newline", "hello\n"},
		{"lf lines", "a\nb\nc\n"},
		{"crlf lines", "a\r\nb\r\nc\r\n"},
		{"crlf no trailing", "a\r\nb"},
		{"single newline", "\n"},
		{"blank lines", "a\n\n\nb\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).Text(); got != tt.text {
				t.Errorf("round trip = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty file", "", 0},
		{"one line", "a", 1},
		{"one line trailing newline", "a\n", 1},
		{"ten lines", tenLines(), 10},
		{"single empty line", "\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).LineCount(); got != tt.want {
				t.Errorf("LineCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	doc := Parse("a\nb\nc\n")
	if doc.Line(2) != "b" {
		t.Errorf("Line(2) = %q, want b", doc.Line(2))
	}
	if doc.Line(0) != "" || doc.Line(4) != "" {
		t.Error("out-of-range lines must return empty string")
	}
}

func TestCRLFPreservedThroughEdit(t *testing.T) {
	doc := Parse("a\r\nb\r\nc\r\n")
	out, _, err := ReplaceLines{Span: LineRange{2, 2}, NewText: "B"}.Apply(doc)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Text() != "a\r\nB\r\nc\r\n" {
		t.Errorf("Text() = %q, CRLF convention must survive edits", out.Text())
	}
}
