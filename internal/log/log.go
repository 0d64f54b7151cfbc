// Package log provides structured event logging for editd operations.
// Every CLI command, MCP tool invocation, and HTTP request records an
// event describing what was attempted and whether it succeeded.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log events:
//
//	log.Event("mcp:propose", "propose").
//		Path(path).
//		Token(preview.Token).
//		Lines(preview.LinesAffected).
//		Write(err)
//
// The source parameter follows the format "cli:{command}" for CLI
// commands, "mcp:{tool}" for MCP tools, or "http:{route}" for HTTP
// handlers.
package log

import (
	"log/slog"
	"time"
)

// Builder constructs a log event using a fluent API.
// Create with [Event], chain methods to set fields, then call
// [Builder.Write] to emit the event.
type Builder struct {
	source string
	action string
	start  time.Time
	attrs  []any
}

// Event creates a new log event builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "cli:{command}" (e.g., "cli:preview", "cli:hash")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:propose", "mcp:approve")
//   - HTTP handlers: "http:{route}" (e.g., "http:propose")
//
// The action describes what was performed: "read", "propose",
// "approve", "cancel", "list".
func Event(source, action string) *Builder {
	return &Builder{
		source: source,
		action: action,
		start:  time.Now(),
	}
}

// Path sets the file path this operation targets.
func (b *Builder) Path(path string) *Builder {
	b.attrs = append(b.attrs, "path", path)
	return b
}

// Token sets the approval token involved in this operation.
func (b *Builder) Token(token string) *Builder {
	b.attrs = append(b.attrs, "token", token)
	return b
}

// Lines sets the number of lines the operation affects.
func (b *Builder) Lines(n int) *Builder {
	b.attrs = append(b.attrs, "lines_affected", n)
	return b
}

// Detail adds an operation-specific key-value pair to the event.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	b.attrs = append(b.attrs, key, value)
	return b
}

// Write emits the event, deriving success or failure from err.
//
// Successful operations log at Info; failures log at Warn with the
// error message attached. The elapsed time since [Event] is recorded
// on every event.
//
// Example:
//
//	applied, err := eng.Approve(token, confirmation)
//	log.Event("mcp:approve", "approve").Token(token).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	attrs := append([]any{
		"source", b.source,
		"action", b.action,
		"elapsed", time.Since(b.start),
	}, b.attrs...)

	if err != nil {
		attrs = append(attrs, "error", err.Error())
		slog.Warn("operation failed", attrs...)
		return
	}
	slog.Info("operation", attrs...)
}
