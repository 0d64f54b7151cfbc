// tools_read.go implements the MCP tool for reading files.
//
// Reading is the entry point for the entire edit workflow: the version
// token returned here is what the propose tools check against, so an LLM
// that skips the read step cannot edit at all.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/editd/internal/log"
)

// readFile handles editd_read tool calls.
func (h *handlers) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	content, version, err := h.eng.Read(path)

	log.Event("mcp:read", "read").Path(path).Write(err)

	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"path":    path,
		"version": version.String(),
		"content": content,
	})
}
