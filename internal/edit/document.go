// document.go models a file as lines plus the conventions needed to
// reassemble it exactly: the line-ending style and whether the file ends
// with a newline.
//
// Separated from edit.go so the operations stay focused on edit semantics
// while the split/join bookkeeping lives in one place.

package edit

import "strings"

// Document is a parsed text buffer. The zero value is an empty file.
type Document struct {
	lines []string
	crlf  bool // line-ending convention, detected from the first line break
	trail bool // file ends with a line break
}

// Parse splits text into a Document. The line-ending convention is detected
// once from the first line break found; a file mixing LF and CRLF is
// normalised to whichever appears first when reassembled.
func Parse(text string) Document {
	var d Document
	if text == "" {
		return d
	}

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		d.crlf = i > 0 && text[i-1] == '\r'
	}

	norm := text
	if d.crlf {
		norm = strings.ReplaceAll(norm, "\r\n", "\n")
	}
	if strings.HasSuffix(norm, "\n") {
		d.trail = true
		norm = norm[:len(norm)-1]
	}
	d.lines = strings.Split(norm, "\n")
	return d
}

// LineCount returns the number of lines. A file with trailing newline
// "a\nb\n" has two lines; an empty file has zero.
func (d Document) LineCount() int {
	return len(d.lines)
}

// Line returns the content of a 1-based line number, or "" when out of
// range.
func (d Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Text reassembles the document, preserving the original line-ending
// convention and trailing-newline state.
func (d Document) Text() string {
	if len(d.lines) == 0 {
		return ""
	}
	ending := "\n"
	if d.crlf {
		ending = "\r\n"
	}
	out := strings.Join(d.lines, ending)
	if d.trail {
		out += ending
	}
	return out
}

// clone returns a Document sharing no line storage with the receiver, so
// operations stay pure.
func (d Document) clone() Document {
	out := d
	out.lines = make([]string, len(d.lines))
	copy(out.lines, d.lines)
	return out
}
