package diff

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNoChange(t *testing.T) {
	s := Compute("a\nb\nc\n", "a\nb\nc\n")
	assert.False(t, s.Changed())
	assert.Empty(t, s.Hunks)
	assert.Equal(t, 0, s.LinesAdded)
	assert.Equal(t, 0, s.LinesRemoved)
	assert.Equal(t, "", s.Render())
}

func TestComputeSingleReplacement(t *testing.T) {
	s := Compute("one\ntwo\nthree\n", "one\n2\nthree\n")

	require.Len(t, s.Hunks, 1)
	h := s.Hunks[0]
	assert.Equal(t, 2, h.OrigStart)
	assert.Equal(t, 2, h.NewStart)
	assert.Equal(t, []string{"two"}, h.Removed)
	assert.Equal(t, []string{"2"}, h.Added)
	assert.Equal(t, 1, s.LinesAdded)
	assert.Equal(t, 1, s.LinesRemoved)
}

func TestComputeInsertOnly(t *testing.T) {
	s := Compute("a\nc\n", "a\nb\nc\n")

	require.Len(t, s.Hunks, 1)
	assert.Empty(t, s.Hunks[0].Removed)
	assert.Equal(t, []string{"b"}, s.Hunks[0].Added)
	assert.Equal(t, 1, s.LinesAdded)
	assert.Equal(t, 0, s.LinesRemoved)
}

func TestComputeDeleteOnly(t *testing.T) {
	s := Compute("a\nb\nc\n", "a\nc\n")

	require.Len(t, s.Hunks, 1)
	assert.Equal(t, []string{"b"}, s.Hunks[0].Removed)
	assert.Empty(t, s.Hunks[0].Added)
}

func TestComputeMultipleHunks(t *testing.T) {
	original := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"
	updated := "1\nTWO\n3\n4\n5\n6\n7\n8\nNINE\n10\n"

	s := Compute(original, updated)
	require.Len(t, s.Hunks, 2)
	assert.Equal(t, 2, s.Hunks[0].OrigStart)
	assert.Equal(t, 9, s.Hunks[1].OrigStart)
}

func TestComputeDeterministic(t *testing.T) {
	original := "alpha\nbeta\ngamma\ndelta\n"
	updated := "alpha\nBETA\ngamma\nDELTA\nextra\n"

	first := Compute(original, updated)
	for range 10 {
		again := Compute(original, updated)
		require.Equal(t, first, again)
	}
}

func TestApplyToRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		original string
		updated  string
	}{
		{"replace middle", "a\nb\nc\n", "a\nB\nc\n"},
		{"delete all", "a\nb\n", ""},
		{"create from empty", "", "x\ny\n"},
		{"no trailing newline", "a\nb", "a\nc"},
		{"gain trailing newline", "a\nb", "a\nb\n"},
		{"lose trailing newline", "a\nb\n", "a\nb"},
		{"disjoint edits", "1\n2\n3\n4\n5\n6\n7\n8\n", "1\nx\n3\n4\n5\n6\ny\n8\nz\n"},
		{"identical", "same\n", "same\n"},
		{"repeated lines", "x\nx\nx\n", "x\ny\nx\nx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(tt.original, tt.updated)
			got, err := s.ApplyTo(tt.original)
			require.NoError(t, err)
			assert.Equal(t, tt.updated, got, "patch must reproduce updated content byte-for-byte")
		})
	}
}

func TestApplyToRejectsWrongBase(t *testing.T) {
	s := Compute("a\nb\nc\n", "a\nB\nc\n")
	_, err := s.ApplyTo("a\nX\nc\n")
	assert.Error(t, err)
}

func TestRenderShape(t *testing.T) {
	s := Compute("ctx1\nctx2\nctx3\nctx4\nold\nctx5\n", "ctx1\nctx2\nctx3\nctx4\nnew\nctx5\n")
	out := s.Render()

	assert.Contains(t, out, "@@ -5,1 +5,1 @@")
	assert.Contains(t, out, "- old")
	assert.Contains(t, out, "+ new")
	assert.Contains(t, out, "  ctx4")
	assert.Contains(t, out, "  ctx5")
	// only three lines of leading context
	assert.NotContains(t, out, "ctx1")
}

func TestFormatHeader(t *testing.T) {
	s := Compute("a\n", "b\n")
	out := s.Format("notes.txt (current)", "notes.txt (proposed)", false)
	assert.True(t, strings.HasPrefix(out, "--- notes.txt (current)\n+++ notes.txt (proposed)\n"))
}

func TestColourise(t *testing.T) {
	s := Compute("a\n", "b\n")
	plain := s.Render()
	coloured := Colourise(plain)
	assert.Contains(t, coloured, "\033[31m- a\033[0m")
	assert.Contains(t, coloured, "\033[32m+ b\033[0m")
}

func TestLargeInputManyUniqueLines(t *testing.T) {
	tests := []struct {
		name  string
		lines int
	}{
		// Enough distinct lines to cross the surrogate gap in the rune
		// encoding.
		{"past surrogate gap", 60000},
		// More distinct lines than the rune space can address, forcing
		// the trim fallback.
		{"past rune ceiling", maxEncodedLines + 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := tt.lines / 2
			var a, b strings.Builder
			for i := range tt.lines {
				line := "line-" + strconv.Itoa(i)
				a.WriteString(line)
				a.WriteByte('\n')
				if i == changed {
					line = "CHANGED"
				}
				b.WriteString(line)
				b.WriteByte('\n')
			}

			s := Compute(a.String(), b.String())
			require.Len(t, s.Hunks, 1)
			assert.Equal(t, changed+1, s.Hunks[0].OrigStart)
			assert.Equal(t, []string{"line-" + strconv.Itoa(changed)}, s.Hunks[0].Removed)
			assert.Equal(t, []string{"CHANGED"}, s.Hunks[0].Added)

			got, err := s.ApplyTo(a.String())
			require.NoError(t, err)
			assert.Equal(t, b.String(), got)
		})
	}
}

func TestTrimFallbackInsertAndDelete(t *testing.T) {
	// Exercised directly: Compute only reaches this path on inputs too
	// large to assert against comfortably.
	a := []string{"a", "b", "c", "d", ""}
	b := []string{"a", "b", "x", "c", "d", ""}

	s := trimDiff(a, b)
	require.Len(t, s.Hunks, 1)
	assert.Equal(t, 3, s.Hunks[0].OrigStart)
	assert.Empty(t, s.Hunks[0].Removed)
	assert.Equal(t, []string{"x"}, s.Hunks[0].Added)

	got, err := s.ApplyTo(strings.Join(a, "\n"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(b, "\n"), got)

	assert.Empty(t, trimDiff(a, a).Hunks)
}
