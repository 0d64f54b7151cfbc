// tools_propose.go implements the MCP tools that create pending edits.
//
// All three tools follow the same shape: parse the version token, build
// the operation, and hand off to the engine. Nothing here touches the
// filesystem beyond the engine's read; writes only happen at approval.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/editd/internal/edit"
	"github.com/jpl-au/editd/internal/log"
)

// proposeReplaceLines handles editd_propose_replace_lines tool calls.
func (h *handlers) proposeReplaceLines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	version, errRes := parseVersion(req)
	if errRes != nil {
		return errRes, nil
	}

	span, errRes := requireSpan(req)
	if errRes != nil {
		return errRes, nil
	}

	newText, err := req.RequireString("new_text")
	if err != nil {
		return mcp.NewToolResultError("new_text is required (empty string removes the lines)"), nil //nolint:nilerr
	}

	op := edit.ReplaceLines{
		Span:    span,
		NewText: newText,
	}

	preview, err := h.eng.Propose(path, op, version, getBool(req, "backup", false))

	log.Event("mcp:propose_replace_lines", "propose").
		Path(path).
		Detail("span", op.Span.String()).
		Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	return previewResult(preview)
}

// proposeDeleteLines handles editd_propose_delete_lines tool calls.
func (h *handlers) proposeDeleteLines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	version, errRes := parseVersion(req)
	if errRes != nil {
		return errRes, nil
	}

	span, errRes := requireSpan(req)
	if errRes != nil {
		return errRes, nil
	}

	op := edit.DeleteLines{Span: span}

	preview, err := h.eng.Propose(path, op, version, getBool(req, "backup", false))

	log.Event("mcp:propose_delete_lines", "propose").
		Path(path).
		Detail("span", op.Span.String()).
		Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	return previewResult(preview)
}

// proposeReplacePattern handles editd_propose_replace_pattern tool calls.
func (h *handlers) proposeReplacePattern(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	version, errRes := parseVersion(req)
	if errRes != nil {
		return errRes, nil
	}

	op := edit.ReplacePattern{
		Pattern:       pattern,
		Replacement:   getString(req, "replacement", ""),
		Regex:         getBool(req, "regex", false),
		CaseSensitive: getBool(req, "case_sensitive", false),
	}

	preview, err := h.eng.Propose(path, op, version, getBool(req, "backup", false))

	log.Event("mcp:propose_replace_pattern", "propose").
		Path(path).
		Detail("pattern", pattern).
		Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	return previewResult(preview)
}
