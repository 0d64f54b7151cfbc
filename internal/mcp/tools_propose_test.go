package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/editd/internal/engine"
	"github.com/jpl-au/editd/internal/fingerprint"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

// Required parameters must be reported by name when absent or mistyped,
// not as a downstream range error.
func TestProposeReplaceLinesRequiredParams(t *testing.T) {
	h := &handlers{eng: engine.New(engine.Options{TTL: time.Minute})}

	valid := func() map[string]any {
		return map[string]any{
			"path":          "unused.txt",
			"start_line":    float64(1),
			"end_line":      float64(2),
			"new_text":      "x",
			"version_token": fingerprint.Compute([]byte("y")).String(),
		}
	}

	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   string
	}{
		{"missing start_line", func(m map[string]any) { delete(m, "start_line") }, "start_line is required"},
		{"missing end_line", func(m map[string]any) { delete(m, "end_line") }, "end_line is required"},
		{"non-numeric end_line", func(m map[string]any) { m["end_line"] = "soon" }, "end_line is required"},
		{"missing new_text", func(m map[string]any) { delete(m, "new_text") }, "new_text is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := valid()
			tt.mutate(args)
			res, err := h.proposeReplaceLines(context.Background(), callRequest(args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestProposeDeleteLinesRequiredParams(t *testing.T) {
	h := &handlers{eng: engine.New(engine.Options{TTL: time.Minute})}

	res, err := h.proposeDeleteLines(context.Background(), callRequest(map[string]any{
		"path":          "unused.txt",
		"version_token": fingerprint.Compute([]byte("y")).String(),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "start_line is required")
}

func TestProposeDeleteLinesSpanFlowsThrough(t *testing.T) {
	content := "one\ntwo\nthree\n"
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	h := &handlers{eng: engine.New(engine.Options{TTL: time.Minute})}
	res, err := h.proposeDeleteLines(context.Background(), callRequest(map[string]any{
		"path":          path,
		"start_line":    float64(2),
		"end_line":      float64(2),
		"version_token": fingerprint.Compute([]byte(content)).String(),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), `"lines_affected": 1`)
}
