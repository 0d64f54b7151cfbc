/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "editd",
	Short: "Version-checked two-phase file editing for LLM workflows",
	Long: `A file edit engine where every change is proposed against a content-derived
version token, previewed as a diff, and only written after explicit approval.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

// Execute runs the root command. Exit code 1 indicates error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
