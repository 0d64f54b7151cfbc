// Package indent infers leading-whitespace style from existing lines and
// renders matching indentation for inserted text.
//
// Replacement text supplied by an LLM frequently arrives unindented even
// when it replaces a deeply nested block. Detecting the displaced line's
// style and re-applying it keeps edits from drifting the file's formatting.
package indent

import "strings"

// Kind classifies the leading whitespace of a line.
type Kind int

const (
	// None means the line has no leading whitespace.
	None Kind = iota
	// Tabs means the line is indented with tab characters only.
	Tabs
	// Spaces means the line is indented with spaces only.
	Spaces
	// Mixed means the line mixes tabs and spaces. Callers must handle this
	// explicitly; it is surfaced rather than silently normalised.
	Mixed
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Tabs:
		return "tabs"
	case Spaces:
		return "spaces"
	case Mixed:
		return "mixed"
	default:
		return "none"
	}
}

// DefaultUnit is the assumed spaces-per-level when the observed count has
// no common divisor.
const DefaultUnit = 4

// commonUnits are tried in order; the first exact divisor wins.
var commonUnits = []int{2, 4, 8}

// Style describes the indentation of a line: the whitespace kind, the unit
// size for space indentation, and the nesting level implied by the leading
// run.
type Style struct {
	Kind  Kind
	Unit  int // spaces per level, meaningful for Kind == Spaces
	Level int
}

// Detect scans the leading whitespace of a single line. Tabs and spaces are
// counted separately up to the first non-whitespace character; a line using
// both reports Mixed with no usable unit or level.
func Detect(line string) Style {
	var tabs, spaces int
scan:
	for _, r := range line {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			break scan
		}
	}

	switch {
	case tabs > 0 && spaces > 0:
		return Style{Kind: Mixed}
	case tabs > 0:
		return Style{Kind: Tabs, Level: tabs}
	case spaces > 0:
		unit := DefaultUnit
		for _, u := range commonUnits {
			if spaces%u == 0 {
				unit = u
				break
			}
		}
		return Style{Kind: Spaces, Unit: unit, Level: spaces / unit}
	default:
		return Style{Kind: None}
	}
}

// AtLevel renders the indent prefix for the requested nesting level.
// Mixed and None styles render nothing: there is no well-defined unit to
// repeat.
func (s Style) AtLevel(level int) string {
	if level <= 0 {
		return ""
	}
	switch s.Kind {
	case Tabs:
		return strings.Repeat("\t", level)
	case Spaces:
		unit := s.Unit
		if unit <= 0 {
			unit = DefaultUnit
		}
		return strings.Repeat(" ", level*unit)
	default:
		return ""
	}
}

// Reindent prefixes every non-empty line of text with the style's indent.
// Text whose first line already carries leading whitespace is returned
// unchanged: the caller supplied its own indentation and we must not
// second-guess it. Blank lines stay blank.
func Reindent(text string, s Style) string {
	if s.Level <= 0 || (s.Kind != Tabs && s.Kind != Spaces) {
		return text
	}
	if text == "" {
		return text
	}
	if first := Detect(firstLine(text)); first.Kind != None {
		return text
	}

	prefix := s.AtLevel(s.Level)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
