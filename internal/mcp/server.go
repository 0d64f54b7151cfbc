// Package mcp implements the Model Context Protocol server, exposing editd
// operations to LLMs. This enables AI assistants to read files and apply
// version-checked, human-approved edits through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/editd/internal/engine"
	"github.com/jpl-au/editd/internal/version"
)

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other
// MCP clients.
func Serve(eng *engine.Engine) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{eng: eng}

	s := server.NewMCPServer(
		"editd",
		version.Short(),
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("editd MCP server ready", "version", version.Short(), "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the edit engine.
type handlers struct {
	eng *engine.Engine
}

// registerResources adds URI-based resource access for direct file reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"editd://files/{path}",
			"File",
			mcp.WithTemplateDescription("Read file content and its current version token"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readFileResource,
	)
}

// registerTools exposes editd operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Read - the entry point for every edit workflow
	s.AddTool(
		mcp.NewTool("editd_read",
			mcp.WithDescription("Read a file and get its current version token. The token must be passed to propose tools; a stale token is rejected."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
		),
		h.readFile,
	)

	// Propose: replace lines
	s.AddTool(
		mcp.NewTool("editd_propose_replace_lines",
			mcp.WithDescription("Propose replacing a line range with new text. Returns a preview and an approval token; nothing is written until editd_approve."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("version", mcp.Required(), mcp.Description("Version token from editd_read")),
			mcp.WithNumber("start_line", mcp.Required(), mcp.Description("First line to replace (1-based, inclusive)")),
			mcp.WithNumber("end_line", mcp.Required(), mcp.Description("Last line to replace (1-based, inclusive)")),
			mcp.WithString("new_text", mcp.Required(), mcp.Description("Replacement text; empty removes the lines")),
			mcp.WithBoolean("backup", mcp.Description("Write a backup of the original file on approval")),
		),
		h.proposeReplaceLines,
	)

	// Propose: delete lines
	s.AddTool(
		mcp.NewTool("editd_propose_delete_lines",
			mcp.WithDescription("Propose deleting a line range. Returns a preview and an approval token; nothing is written until editd_approve."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("version", mcp.Required(), mcp.Description("Version token from editd_read")),
			mcp.WithNumber("start_line", mcp.Required(), mcp.Description("First line to delete (1-based, inclusive)")),
			mcp.WithNumber("end_line", mcp.Required(), mcp.Description("Last line to delete (1-based, inclusive)")),
			mcp.WithBoolean("backup", mcp.Description("Write a backup of the original file on approval")),
		),
		h.proposeDeleteLines,
	)

	// Propose: replace pattern
	s.AddTool(
		mcp.NewTool("editd_propose_replace_pattern",
			mcp.WithDescription("Propose replacing every occurrence of a pattern. Returns a preview and an approval token; nothing is written until editd_approve."),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path")),
			mcp.WithString("version", mcp.Required(), mcp.Description("Version token from editd_read")),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Text or regex to find")),
			mcp.WithString("replacement", mcp.Description("Replacement text")),
			mcp.WithBoolean("regex", mcp.Description("Treat pattern as a regular expression (default: literal)")),
			mcp.WithBoolean("case_sensitive", mcp.Description("Match case exactly (default: insensitive)")),
			mcp.WithBoolean("backup", mcp.Description("Write a backup of the original file on approval")),
		),
		h.proposeReplacePattern,
	)

	// Approve
	s.AddTool(
		mcp.NewTool("editd_approve",
			mcp.WithDescription("Apply a pending edit. Requires the approval token and the literal confirmation string \"APPROVE\" to guard against accidental writes."),
			mcp.WithString("token", mcp.Required(), mcp.Description("Approval token from a propose tool")),
			mcp.WithString("confirm", mcp.Required(), mcp.Description("Must be exactly APPROVE")),
		),
		h.approve,
	)

	// Cancel
	s.AddTool(
		mcp.NewTool("editd_cancel",
			mcp.WithDescription("Discard a pending edit without applying it"),
			mcp.WithString("token", mcp.Required(), mcp.Description("Approval token from a propose tool")),
		),
		h.cancel,
	)

	// List pending
	s.AddTool(
		mcp.NewTool("editd_list_pending",
			mcp.WithDescription("List pending edits that have not been approved, cancelled, or expired"),
		),
		h.listPending,
	)

	// Guide
	s.AddTool(
		mcp.NewTool("editd_guide",
			mcp.WithDescription("Get help/guide content for the editd workflow"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'workflow', 'serve') or empty for index")),
		),
		h.getGuide,
	)
}
