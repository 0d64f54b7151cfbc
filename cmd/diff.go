/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// diff.go implements the "editd diff" command for comparing two files.
//
// Terminal output gets ANSI colouring; pipe/redirect gets plain unified
// output for machine consumption.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/editd/internal/diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff FILE1 FILE2",
	Short: "Show a line diff between two files",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		a, err := os.ReadFile(args[0])
		if err != nil {
			return PrintJSONError(err)
		}
		b, err := os.ReadFile(args[1])
		if err != nil {
			return PrintJSONError(err)
		}

		summary := diff.Compute(string(a), string(b))

		if JSON() {
			return PrintJSON(map[string]any{
				"changed":       summary.Changed(),
				"lines_added":   summary.LinesAdded,
				"lines_removed": summary.LinesRemoved,
				"diff":          summary.Render(),
			})
		}

		if !summary.Changed() {
			return nil
		}

		colour := term.IsTerminal(int(os.Stdout.Fd()))
		fmt.Fprint(Out(), summary.Format(args[0], args[1], colour))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
