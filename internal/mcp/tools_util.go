// tools_util.go provides helper functions for MCP tool parameter extraction
// and result shaping.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers provide safe defaults when
// optional parameters are missing.
//
// Design: Optional parameters use permissive extraction (return default on
// error) because MCP tools should be forgiving - an LLM omitting an optional
// parameter shouldn't cause cryptic errors. Required parameters are extracted
// strictly so an absent or mistyped value names the parameter at fault
// instead of surfacing as a downstream validation error.

package mcp

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/editd/internal/edit"
	"github.com/jpl-au/editd/internal/engine"
	"github.com/jpl-au/editd/internal/fingerprint"
)

// getString extracts a string parameter from the MCP request, returning the
// provided default if the parameter is missing or cannot be parsed as a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the MCP request arguments.
//
// JSON booleans decode as Go bool values, so a simple type assertion
// suffices. Returns the default if the parameter is missing or not a
// boolean.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// requireSpan extracts the required start_line/end_line pair. A missing or
// non-numeric value produces an error result naming the parameter, the same
// treatment the required string parameters get; range semantics are then
// validated by the operation itself.
func requireSpan(req mcp.CallToolRequest) (edit.LineRange, *mcp.CallToolResult) {
	start, err := req.RequireInt("start_line")
	if err != nil {
		return edit.LineRange{}, mcp.NewToolResultError("start_line is required and must be a number")
	}
	end, err := req.RequireInt("end_line")
	if err != nil {
		return edit.LineRange{}, mcp.NewToolResultError("end_line is required and must be a number")
	}
	return edit.LineRange{Start: start, End: end}, nil
}

// jsonResult serialises any value as pretty-printed JSON and wraps it in an
// MCP text result for return to the LLM client.
//
// Pretty-printed rather than compact because LLMs parse structured output
// more reliably when it's formatted for readability.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult maps engine errors to MCP error results with guidance the
// LLM can act on. A stale version token is the most common failure and
// gets explicit recovery instructions.
func errorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, engine.ErrVersionConflict):
		return mcp.NewToolResultError("version conflict: the file changed since this version token was computed - call editd_read again and re-propose against the current content")
	case errors.Is(err, engine.ErrTokenNotFound):
		return mcp.NewToolResultError("approval token not found: it was already used, cancelled, or never issued")
	case errors.Is(err, engine.ErrTokenExpired):
		return mcp.NewToolResultError("approval token expired: re-propose the edit to get a fresh token")
	case errors.Is(err, engine.ErrConfirmationMismatch):
		return mcp.NewToolResultError("confirmation mismatch: pass the literal string APPROVE to apply the edit")
	case errors.Is(err, engine.ErrPatternNotFound):
		return mcp.NewToolResultError("pattern not found in file")
	case errors.Is(err, edit.ErrInvalidRange):
		return mcp.NewToolResultError("invalid line range: " + err.Error())
	case errors.Is(err, edit.ErrBadPattern):
		return mcp.NewToolResultError("invalid pattern: " + err.Error())
	case errors.Is(err, engine.ErrOutsideRoot):
		return mcp.NewToolResultError("path is outside the configured root directory")
	default:
		return mcp.NewToolResultError(err.Error())
	}
}

// parseVersion parses the version token argument shared by all propose tools.
func parseVersion(req mcp.CallToolRequest) (fingerprint.Token, *mcp.CallToolResult) {
	raw, err := req.RequireString("version")
	if err != nil {
		return fingerprint.Token{}, mcp.NewToolResultError("version is required - call editd_read to get the current version token")
	}
	tok, err := fingerprint.Parse(raw)
	if err != nil {
		return fingerprint.Token{}, mcp.NewToolResultError("invalid version token: " + err.Error())
	}
	return tok, nil
}

// previewResult shapes an engine preview for return to the LLM. The diff
// is rendered in unified style rather than returned structurally because
// LLMs read patches natively.
func previewResult(p engine.Preview) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"approval_token": p.Token,
		"expires_at":     p.ExpiresAt,
		"lines_affected": p.LinesAffected,
		"diff":           p.Diff.Render(),
		"preview":        p.Content,
		"next_step":      "call editd_approve with the approval_token and confirm=APPROVE, or editd_cancel to discard",
	})
}
