/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// preview.go implements the "editd preview" command: a one-shot dry run
// of an edit without starting a server. The same engine code path runs
// as for a served proposal, so the printed diff is exactly what an
// approval would write; the pending entry is cancelled before exit.

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/editd/internal/edit"
)

var (
	previewLines   string
	previewText    string
	previewDelete  bool
	previewPattern string
	previewReplace string
	previewRegex   bool
	previewCase    bool
)

var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Preview an edit without applying it",
	Long: `Apply an edit in memory and print the resulting diff. Nothing is written.

  editd preview notes.txt --lines 3:5 --text "replacement"
  editd preview notes.txt --lines 2:2 --delete
  editd preview notes.txt --pattern "colour" --replacement "color"`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(_ *cobra.Command, args []string) error {
	op, err := previewOperation()
	if err != nil {
		return PrintJSONError(err)
	}

	eng, err := engineFromConfig()
	if err != nil {
		return err
	}

	_, version, err := eng.Read(args[0])
	if err != nil {
		return PrintJSONError(err)
	}

	preview, err := eng.Propose(args[0], op, version, false)
	if err != nil {
		return PrintJSONError(err)
	}
	defer eng.Cancel(preview.Token)

	if JSON() {
		return PrintJSON(map[string]any{
			"path":           args[0],
			"lines_affected": preview.LinesAffected,
			"diff":           preview.Diff.Render(),
			"preview":        preview.Content,
		})
	}

	if !preview.Diff.Changed() {
		fmt.Fprintln(Out(), "no changes")
		return nil
	}

	colour := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Fprint(Out(), preview.Diff.Format(args[0], args[0], colour))
	fmt.Fprintf(Out(), "%d lines affected\n", preview.LinesAffected)
	return nil
}

// previewOperation builds the edit operation from the flag combination.
func previewOperation() (edit.Operation, error) {
	switch {
	case previewPattern != "":
		return edit.ReplacePattern{
			Pattern:       previewPattern,
			Replacement:   previewReplace,
			Regex:         previewRegex,
			CaseSensitive: previewCase,
		}, nil
	case previewLines != "":
		span, err := parseLineRange(previewLines)
		if err != nil {
			return nil, err
		}
		if previewDelete {
			return edit.DeleteLines{Span: span}, nil
		}
		return edit.ReplaceLines{Span: span, NewText: previewText}, nil
	default:
		return nil, fmt.Errorf("specify --lines or --pattern")
	}
}

// parseLineRange parses "start:end" (or a single "n" meaning n:n).
func parseLineRange(s string) (edit.LineRange, error) {
	start, end, ok := strings.Cut(s, ":")
	if !ok {
		end = start
	}
	from, err := strconv.Atoi(start)
	if err != nil {
		return edit.LineRange{}, fmt.Errorf("invalid line range %q", s)
	}
	to, err := strconv.Atoi(end)
	if err != nil {
		return edit.LineRange{}, fmt.Errorf("invalid line range %q", s)
	}
	return edit.LineRange{Start: from, End: to}, nil
}

func init() {
	previewCmd.Flags().StringVarP(&previewLines, "lines", "l", "", "Line range to edit (start:end, 1-based inclusive)")
	previewCmd.Flags().StringVarP(&previewText, "text", "t", "", "Replacement text for --lines")
	previewCmd.Flags().BoolVar(&previewDelete, "delete", false, "Delete the line range instead of replacing it")
	previewCmd.Flags().StringVarP(&previewPattern, "pattern", "p", "", "Text or regex to find")
	previewCmd.Flags().StringVarP(&previewReplace, "replacement", "r", "", "Replacement for --pattern")
	previewCmd.Flags().BoolVar(&previewRegex, "regex", false, "Treat pattern as a regular expression")
	previewCmd.Flags().BoolVar(&previewCase, "case-sensitive", false, "Match case exactly")
	rootCmd.AddCommand(previewCmd)
}
