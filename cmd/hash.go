/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// hash.go implements the "editd hash" command: print a file's current
// version token. Scripts pipe this into the REST API's propose call.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpl-au/editd/internal/fingerprint"
)

var hashCmd = &cobra.Command{
	Use:   "hash FILE",
	Short: "Print a file's version token",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		token := fingerprint.Compute(data)

		if JSON() {
			return PrintJSON(map[string]string{"path": args[0], "version": token.String()})
		}
		fmt.Fprintln(Out(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
