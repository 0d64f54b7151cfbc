// Package httpapi exposes the edit engine over a small REST surface for
// clients that are not MCP-capable: scripts, CI jobs, editor plugins.
//
// The API mirrors the MCP tools one-to-one. State lives in the engine;
// handlers only translate between HTTP and engine calls.
package httpapi

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jpl-au/editd/internal/edit"
	"github.com/jpl-au/editd/internal/engine"
	"github.com/jpl-au/editd/internal/fingerprint"
	"github.com/jpl-au/editd/internal/log"
	"github.com/jpl-au/editd/internal/pending"
)

// Server is the HTTP API surface for editd.
type Server struct {
	eng    *engine.Engine
	router chi.Router
}

// NewServer creates a Server around an existing engine. The engine is
// shared with the MCP transport when both are running, so pending edits
// proposed over one transport can be approved over the other.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{
		eng:    eng,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Post("/v1/propose", s.handlePropose)
	r.Post("/v1/approve", s.handleApprove)
	r.Post("/v1/cancel", s.handleCancel)
	r.Get("/v1/pending", s.handleListPending)
	r.Get("/v1/file", s.handleReadFile)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps engine errors onto HTTP status codes. Conflicts use
// 409 as an If-Match style precondition failure; expired tokens use
// 410 so clients can distinguish "too late" from "never existed".
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, engine.ErrTokenNotFound),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrTokenExpired):
		return http.StatusGone
	case errors.Is(err, engine.ErrConfirmationMismatch):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrOutsideRoot):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrPatternNotFound),
		errors.Is(err, engine.ErrFileTooLarge),
		errors.Is(err, edit.ErrInvalidRange),
		errors.Is(err, edit.ErrBadPattern):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// --- HTTP handlers ---

// proposeRequest is the wire form of a proposal. The operation field
// selects which of the remaining fields apply.
type proposeRequest struct {
	Path      string `json:"path"`
	Version   string `json:"version"`
	Operation string `json:"operation"` // replace_lines, delete_lines, replace_pattern
	Backup    bool   `json:"backup"`

	// Line operations
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	NewText   string `json:"new_text"`

	// Pattern operations
	Pattern       string `json:"pattern"`
	Replacement   string `json:"replacement"`
	Regex         bool   `json:"regex"`
	CaseSensitive bool   `json:"case_sensitive"`
}

func (r proposeRequest) operation() (edit.Operation, error) {
	span := edit.LineRange{Start: r.StartLine, End: r.EndLine}
	switch r.Operation {
	case edit.KindReplaceLines:
		return edit.ReplaceLines{Span: span, NewText: r.NewText}, nil
	case edit.KindDeleteLines:
		return edit.DeleteLines{Span: span}, nil
	case edit.KindReplacePattern:
		return edit.ReplacePattern{
			Pattern:       r.Pattern,
			Replacement:   r.Replacement,
			Regex:         r.Regex,
			CaseSensitive: r.CaseSensitive,
		}, nil
	default:
		return nil, errors.New("unknown operation: " + r.Operation)
	}
}

func (s *Server) handlePropose(w http.ResponseWriter, r *http.Request) {
	var body proposeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	version, err := fingerprint.Parse(body.Version)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid version token: "+err.Error())
		return
	}

	op, err := body.operation()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := s.eng.Propose(body.Path, op, version, body.Backup)

	log.Event("http:propose", "propose").Path(body.Path).Detail("operation", body.Operation).Write(err)

	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"approval_token": preview.Token,
		"expires_at":     preview.ExpiresAt,
		"lines_affected": preview.LinesAffected,
		"diff":           preview.Diff.Render(),
		"preview":        preview.Content,
	})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token   string `json:"token"`
		Confirm string `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	applied, err := s.eng.Approve(body.Token, body.Confirm)

	log.Event("http:approve", "approve").Token(body.Token).Write(err)

	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"path":           applied.Path,
		"lines_affected": applied.LinesAffected,
		"diff":           applied.Diff.Render(),
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	cancelled := s.eng.Cancel(body.Token)

	log.Event("http:cancel", "cancel").Token(body.Token).Detail("cancelled", cancelled).Write(nil)

	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}

func (s *Server) handleListPending(w http.ResponseWriter, r *http.Request) {
	edits := s.eng.ListPending()

	log.Event("http:pending", "list").Detail("count", len(edits)).Write(nil)

	if edits == nil {
		edits = []pending.Summary{} // encode as [] rather than null
	}
	writeJSON(w, http.StatusOK, edits)
}

func (s *Server) handleReadFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path query parameter")
		return
	}

	content, version, err := s.eng.Read(path)

	log.Event("http:file", "read").Path(path).Write(err)

	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"path":    path,
		"version": version.String(),
		"content": content,
	})
}
