// tools_pending.go implements the MCP tool for listing pending edits.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/editd/internal/log"
)

// listPending handles editd_list_pending tool calls.
func (h *handlers) listPending(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	edits := h.eng.ListPending()

	log.Event("mcp:list_pending", "list").Detail("count", len(edits)).Write(nil)

	if len(edits) == 0 {
		return mcp.NewToolResultText("no pending edits"), nil
	}
	return jsonResult(edits)
}
