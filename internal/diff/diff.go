// Package diff computes minimal line-level edit scripts between two text
// buffers and renders them in a unified-diff-like form.
//
// The Myers core comes from sergi/go-diff; lines are encoded to runes before
// diffing so the edit script is proportional to the number of changed lines,
// not file size. Identical inputs always produce an identical hunk sequence,
// which the engine relies on when it re-renders a stored summary.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after each
// hunk when rendering.
const contextLines = 3

// Hunk is one contiguous block of changed lines. Line numbers are 1-based.
type Hunk struct {
	OrigStart int      // first affected line in the original
	OrigLines int      // number of removed lines
	NewStart  int      // first affected line in the updated text
	NewLines  int      // number of added lines
	Removed   []string // lines deleted from the original
	Added     []string // lines inserted in the updated text

	// context captured at compute time, used only for rendering
	before []string
	after  []string
}

// Summary is an ordered edit script plus aggregate counts.
type Summary struct {
	Hunks        []Hunk
	LinesAdded   int
	LinesRemoved int
}

// Changed reports whether the two inputs differed at all.
func (s Summary) Changed() bool {
	return len(s.Hunks) > 0
}

// Compute returns the line-level edit script turning original into updated.
func Compute(original, updated string) Summary {
	origLines := strings.Split(original, "\n")
	newLines := strings.Split(updated, "\n")

	encA, encB, table, ok := encodeLines(origLines, newLines)
	if !ok {
		return trimDiff(origLines, newLines)
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(encA, encB, false)

	var s Summary
	var cur *Hunk
	var lastEqual []string
	origLine, newLine := 1, 1

	flush := func() {
		if cur == nil {
			return
		}
		cur.OrigLines = len(cur.Removed)
		cur.NewLines = len(cur.Added)
		s.LinesRemoved += cur.OrigLines
		s.LinesAdded += cur.NewLines
		s.Hunks = append(s.Hunks, *cur)
		cur = nil
	}

	for _, d := range diffs {
		lines := decodeLines(d.Text, table)
		if len(lines) == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if cur != nil {
				cur.after = clip(lines, contextLines, false)
			}
			flush()
			origLine += len(lines)
			newLine += len(lines)
			lastEqual = clip(lines, contextLines, true)
		case diffmatchpatch.DiffDelete:
			if cur == nil {
				cur = &Hunk{OrigStart: origLine, NewStart: newLine, before: lastEqual}
			}
			cur.Removed = append(cur.Removed, lines...)
			origLine += len(lines)
		case diffmatchpatch.DiffInsert:
			if cur == nil {
				cur = &Hunk{OrigStart: origLine, NewStart: newLine, before: lastEqual}
			}
			cur.Added = append(cur.Added, lines...)
			newLine += len(lines)
		}
	}
	flush()
	return s
}

// clip returns up to n lines from the start (fromEnd false) or end of lines.
func clip(lines []string, n int, fromEnd bool) []string {
	if len(lines) <= n {
		out := make([]string, len(lines))
		copy(out, lines)
		return out
	}
	out := make([]string, n)
	if fromEnd {
		copy(out, lines[len(lines)-n:])
	} else {
		copy(out, lines[:n])
	}
	return out
}

// ApplyTo replays the edit script against original, reproducing the updated
// text byte-for-byte. It errors if original does not contain the lines the
// hunks expect, which means the summary was computed against different
// content.
func (s Summary) ApplyTo(original string) (string, error) {
	lines := strings.Split(original, "\n")
	var out []string
	pos := 0 // 0-based cursor into lines

	for _, h := range s.Hunks {
		start := h.OrigStart - 1
		if start < pos || start > len(lines) {
			return "", fmt.Errorf("hunk at line %d out of order", h.OrigStart)
		}
		out = append(out, lines[pos:start]...)
		for i, want := range h.Removed {
			at := start + i
			if at >= len(lines) || lines[at] != want {
				return "", fmt.Errorf("hunk mismatch at line %d: original does not contain expected text", at+1)
			}
		}
		out = append(out, h.Added...)
		pos = start + len(h.Removed)
	}
	out = append(out, lines[pos:]...)
	return strings.Join(out, "\n"), nil
}

// Render produces the human-readable unified-style form with up to
// contextLines lines of context around each hunk.
func (s Summary) Render() string {
	if !s.Changed() {
		return ""
	}
	var b strings.Builder
	for _, h := range s.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OrigStart, h.OrigLines, h.NewStart, h.NewLines)
		for _, l := range h.before {
			b.WriteString("  " + l + "\n")
		}
		for _, l := range h.Removed {
			b.WriteString("- " + l + "\n")
		}
		for _, l := range h.Added {
			b.WriteString("+ " + l + "\n")
		}
		for _, l := range h.after {
			b.WriteString("  " + l + "\n")
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to rendered diff output for terminals.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		cyan  = "\033[36m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		case strings.HasPrefix(line, "@@"):
			b.WriteString(cyan + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the rendered diff with a file header.
func (s Summary) Format(oldLabel, newLabel string, colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", oldLabel, newLabel)
	if colour {
		return header + Colourise(s.Render())
	}
	return header + s.Render()
}

// maxEncodedLines is the number of distinct lines idToRune can address:
// ids above it would map past U+10FFFF, which strings.Builder silently
// rewrites to U+FFFD, aliasing distinct lines.
const maxEncodedLines = 0x10FFFF - 0x800

// encodeLines maps each distinct line to a unique rune and returns both
// inputs in encoded form plus the reverse table. The surrogate range is
// skipped during id assignment so encoded strings survive the round trip
// through Go's rune handling. Inputs with more distinct lines than the
// rune space can hold report ok=false instead of encoding; callers must
// fall back to trimDiff.
func encodeLines(a, b []string) (ea, eb string, table []string, ok bool) {
	ids := make(map[string]int)

	encode := func(lines []string) (string, bool) {
		var sb strings.Builder
		for _, l := range lines {
			id, seen := ids[l]
			if !seen {
				if len(table) == maxEncodedLines {
					return "", false
				}
				id = len(table)
				ids[l] = id
				table = append(table, l)
			}
			sb.WriteRune(idToRune(id))
		}
		return sb.String(), true
	}

	if ea, ok = encode(a); !ok {
		return "", "", nil, false
	}
	if eb, ok = encode(b); !ok {
		return "", "", nil, false
	}
	return ea, eb, table, true
}

// trimDiff diffs by stripping the common prefix and suffix and reporting
// the remainder as a single hunk. Coarser than the Myers path when changes
// are spread across several regions, but correct and deterministic, which
// is what matters once the line table no longer fits the rune space.
func trimDiff(a, b []string) Summary {
	pre := 0
	for pre < len(a) && pre < len(b) && a[pre] == b[pre] {
		pre++
	}
	suf := 0
	for suf < len(a)-pre && suf < len(b)-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}

	removed := a[pre : len(a)-suf]
	added := b[pre : len(b)-suf]
	if len(removed) == 0 && len(added) == 0 {
		return Summary{}
	}

	h := Hunk{
		OrigStart: pre + 1,
		OrigLines: len(removed),
		NewStart:  pre + 1,
		NewLines:  len(added),
		Removed:   append([]string(nil), removed...),
		Added:     append([]string(nil), added...),
		before:    clip(a[:pre], contextLines, true),
		after:     clip(a[len(a)-suf:], contextLines, false),
	}
	return Summary{Hunks: []Hunk{h}, LinesAdded: len(added), LinesRemoved: len(removed)}
}

// decodeLines converts an encoded diff fragment back into lines.
func decodeLines(enc string, table []string) []string {
	var lines []string
	for _, r := range enc {
		lines = append(lines, table[runeToID(r)])
	}
	return lines
}

func idToRune(id int) rune {
	r := rune(id + 1)
	if r >= 0xD800 { // skip the UTF-16 surrogate range
		r += 0x800
	}
	return r
}

func runeToID(r rune) int {
	if r >= 0xE000 {
		r -= 0x800
	}
	return int(r) - 1
}
