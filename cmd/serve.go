/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// serve.go implements the "editd serve" command.
//
// Unlike other commands that run and exit, serve blocks indefinitely
// handling MCP requests over stdio. With --http, a REST API shares the
// same engine, so edits proposed over one transport can be approved
// over the other.

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpl-au/editd/internal/config"
	"github.com/jpl-au/editd/internal/engine"
	"github.com/jpl-au/editd/internal/httpapi"
	"github.com/jpl-au/editd/internal/mcp"
)

var httpAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --http to also serve the REST API:
  editd serve --http :8787`,
	RunE: runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	eng, err := engineFromConfig()
	if err != nil {
		return err
	}

	// Both transports report over channels so a failure in one surfaces
	// as an ordinary command error instead of tearing the process down
	// under the other.
	httpErr := make(chan error, 1)
	if httpAddr != "" {
		srv := httpapi.NewServer(eng).HTTPServer(httpAddr)
		go func() {
			slog.Info("editd HTTP API listening", "addr", httpAddr)
			httpErr <- srv.ListenAndServe()
		}()
	}

	mcpErr := make(chan error, 1)
	go func() { mcpErr <- mcp.Serve(eng) }()

	select {
	case err := <-httpErr:
		return fmt.Errorf("http server: %w", err)
	case err := <-mcpErr:
		return err
	}
}

// engineFromConfig builds an engine from the loaded configuration.
func engineFromConfig() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return engine.New(engine.Options{
		TTL:            cfg.EffectiveTTL(),
		BackupSuffix:   cfg.EffectiveBackupSuffix(),
		Root:           cfg.EffectiveRoot(),
		PatternNoMatch: engine.NoMatchPolicy(cfg.EffectivePatternNoMatch()),
		MaxFileSize:    cfg.EffectiveMaxFileSize(),
	}), nil
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "http", "", "Also serve the REST API on this address (e.g. :8787)")
	rootCmd.AddCommand(serveCmd)
}
