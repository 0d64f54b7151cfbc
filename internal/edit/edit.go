// Package edit provides pure, in-memory edit operations over file text.
//
// Each operation takes a Document and returns a new one without touching
// disk; the engine owns all filesystem access. Line ranges are 1-based and
// inclusive, matching what editors and agents display.
package edit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jpl-au/editd/internal/indent"
)

var (
	// ErrInvalidRange is returned when a line range is malformed or falls
	// outside the file.
	ErrInvalidRange = errors.New("invalid line range")
	// ErrBadPattern is returned when a search pattern does not compile.
	ErrBadPattern = errors.New("bad search pattern")
)

// Operation kinds reported in pending-edit summaries.
const (
	KindReplaceLines   = "replace_lines"
	KindDeleteLines    = "delete_lines"
	KindReplacePattern = "replace_pattern"
)

// Operation is one self-applying edit variant.
type Operation interface {
	// Kind identifies the operation variant.
	Kind() string
	// Describe returns a short human-readable locator, e.g. "lines 3:5".
	Describe() string
	// Apply produces the edited document and the number of lines affected.
	Apply(doc Document) (Document, int, error)
}

// LineRange is a 1-based inclusive range of lines.
type LineRange struct {
	Start int
	End   int
}

// Validate checks the structural invariant start >= 1 && end >= start.
func (r LineRange) Validate() error {
	if r.Start < 1 {
		return fmt.Errorf("%w: start line must be >= 1, got %d", ErrInvalidRange, r.Start)
	}
	if r.End < r.Start {
		return fmt.Errorf("%w: end line %d is less than start line %d", ErrInvalidRange, r.End, r.Start)
	}
	return nil
}

// WithinFile reports whether the whole range lies inside a file of
// totalLines lines.
func (r LineRange) WithinFile(totalLines int) bool {
	return r.Start >= 1 && r.End >= r.Start && r.End <= totalLines
}

// Lines is the number of lines spanned.
func (r LineRange) Lines() int {
	return r.End - r.Start + 1
}

// Overlaps reports whether two ranges share at least one line.
func (r LineRange) Overlaps(o LineRange) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// String renders the range as "start:end".
func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}

// ReplaceLines replaces an inclusive line range with new text. Replacement
// text that arrives without leading whitespace is re-indented to the style
// of the first displaced line.
type ReplaceLines struct {
	Span    LineRange
	NewText string
}

// Kind implements Operation.
func (op ReplaceLines) Kind() string { return KindReplaceLines }

// Describe implements Operation.
func (op ReplaceLines) Describe() string { return "lines " + op.Span.String() }

// Apply implements Operation. The affected count is the size of the
// replaced range, regardless of how many lines the replacement contains.
func (op ReplaceLines) Apply(doc Document) (Document, int, error) {
	if err := op.Span.Validate(); err != nil {
		return doc, 0, err
	}
	total := doc.LineCount()
	if !op.Span.WithinFile(total) {
		return doc, 0, fmt.Errorf("%w: lines %s exceed file length %d", ErrInvalidRange, op.Span, total)
	}

	style := indent.Detect(doc.Line(op.Span.Start))
	text := indent.Reindent(strings.TrimSuffix(op.NewText, "\n"), style)

	var replacement []string
	if text != "" {
		replacement = strings.Split(text, "\n")
	}

	out := doc.clone()
	out.lines = splice(doc.lines, op.Span.Start-1, op.Span.End, replacement)
	return out, op.Span.Lines(), nil
}

// DeleteLines removes an inclusive line range.
type DeleteLines struct {
	Span LineRange
}

// Kind implements Operation.
func (op DeleteLines) Kind() string { return KindDeleteLines }

// Describe implements Operation.
func (op DeleteLines) Describe() string { return "lines " + op.Span.String() }

// Apply implements Operation.
func (op DeleteLines) Apply(doc Document) (Document, int, error) {
	if err := op.Span.Validate(); err != nil {
		return doc, 0, err
	}
	total := doc.LineCount()
	if !op.Span.WithinFile(total) {
		return doc, 0, fmt.Errorf("%w: lines %s exceed file length %d", ErrInvalidRange, op.Span, total)
	}

	out := doc.clone()
	out.lines = splice(doc.lines, op.Span.Start-1, op.Span.End, nil)
	return out, op.Span.Lines(), nil
}

// ReplacePattern replaces every match of a pattern across the whole file.
// Pattern is a literal substring unless Regex is set. Matching is applied
// line by line; the affected count is the number of distinct lines whose
// content changed, so a line with several matches counts once. Zero matches
// is a successful zero-change result; policy for reporting it lives in the
// engine.
type ReplacePattern struct {
	Pattern       string
	Replacement   string
	Regex         bool
	CaseSensitive bool
}

// Kind implements Operation.
func (op ReplacePattern) Kind() string { return KindReplacePattern }

// Describe implements Operation.
func (op ReplacePattern) Describe() string { return fmt.Sprintf("pattern %q", op.Pattern) }

// Apply implements Operation.
func (op ReplacePattern) Apply(doc Document) (Document, int, error) {
	re, err := op.compile()
	if err != nil {
		return doc, 0, err
	}

	out := doc.clone()
	affected := 0
	for i, line := range out.lines {
		var next string
		if op.Regex {
			next = re.ReplaceAllString(line, op.Replacement)
		} else {
			next = re.ReplaceAllLiteralString(line, op.Replacement)
		}
		if next != line {
			out.lines[i] = next
			affected++
		}
	}
	return out, affected, nil
}

func (op ReplacePattern) compile() (*regexp.Regexp, error) {
	pat := op.Pattern
	if !op.Regex {
		pat = regexp.QuoteMeta(pat)
	}
	if !op.CaseSensitive {
		pat = "(?i)" + pat
	}
	re, err := regexp.Compile(pat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	return re, nil
}

// splice replaces lines[from:to] (0-based, exclusive end) with replacement.
func splice(lines []string, from, to int, replacement []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(replacement))
	out = append(out, lines[:from]...)
	out = append(out, replacement...)
	out = append(out, lines[to:]...)
	return out
}
