// tools_approve.go implements the MCP tools that resolve pending edits:
// approving one (the only write path in the server) and cancelling one.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/editd/internal/log"
)

// approve handles editd_approve tool calls.
func (h *handlers) approve(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError("token is required"), nil //nolint:nilerr
	}

	// Deliberately no default: an absent confirm must not approve.
	confirm, err := req.RequireString("confirm")
	if err != nil {
		return mcp.NewToolResultError("confirm is required - pass the literal string APPROVE"), nil //nolint:nilerr
	}

	applied, err := h.eng.Approve(token, confirm)

	log.Event("mcp:approve", "approve").Token(token).Write(err)

	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"path":           applied.Path,
		"lines_affected": applied.LinesAffected,
		"diff":           applied.Diff.Render(),
		"note":           "the file has changed - call editd_read before proposing further edits",
	})
}

// cancel handles editd_cancel tool calls.
func (h *handlers) cancel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	token, err := req.RequireString("token")
	if err != nil {
		return mcp.NewToolResultError("token is required"), nil //nolint:nilerr
	}

	cancelled := h.eng.Cancel(token)

	log.Event("mcp:cancel", "cancel").Token(token).Detail("cancelled", cancelled).Write(nil)

	if !cancelled {
		return mcp.NewToolResultText("no pending edit for that token (already resolved or expired)"), nil
	}
	return mcp.NewToolResultText("pending edit cancelled"), nil
}
