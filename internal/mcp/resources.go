// resources.go implements MCP resource handlers for file access.
//
// MCP resources provide read-only access to files via URI schemes,
// enabling LLM clients to load file content into context without using
// tools. The version token travels in the content header so a client
// that reads via resource can still propose edits.
//
// Design: Resource URIs follow the pattern editd://files/{path}.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI, helping clients
	// debug URI construction issues.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing file path in a resource URI.
	ErrEmptyPath = errors.New("empty file path")
)

// readFileResource reads a file and returns it as resource contents.
// The first line of the text carries the version token; the file
// content follows after a blank line.
func (h *handlers) readFileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) { //nolint:revive // ctx for future use
	path, err := parseFileURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	content, version, err := h.eng.Read(path)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("version: %s\n\n%s", version, content),
		},
	}, nil
}

// parseFileURI extracts the file path from an editd://files/{path} URI.
func parseFileURI(uri string) (string, error) {
	const prefix = "editd://files/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	path := strings.TrimPrefix(uri, prefix)
	if path == "" {
		return "", ErrEmptyPath
	}
	return path, nil
}
