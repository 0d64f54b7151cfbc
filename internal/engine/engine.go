// Package engine orchestrates the two-phase edit lifecycle: propose
// computes and parks an edit, approve re-checks ground truth and writes.
//
// Concurrency is optimistic throughout. Two proposals against the same
// file version both succeed; the conflict surfaces when the second one is
// approved, because the file's content hash no longer matches. Mutual
// exclusion is expressed through data comparison, not locks, so a third
// party editing the file directly is detected rather than prevented.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jpl-au/editd/internal/diff"
	"github.com/jpl-au/editd/internal/edit"
	"github.com/jpl-au/editd/internal/fingerprint"
	"github.com/jpl-au/editd/internal/pending"
)

// Confirmation is the exact literal approve requires. Compared by value;
// near-matches are rejected so an agent cannot stumble into an approval.
const Confirmation = "APPROVE"

// NoMatchPolicy controls how a zero-match pattern replace is reported.
type NoMatchPolicy string

const (
	// NoMatchPreview returns a successful preview with zero changes.
	NoMatchPreview NoMatchPolicy = "preview"
	// NoMatchError fails the proposal with ErrPatternNotFound.
	NoMatchError NoMatchPolicy = "error"
)

// Options configures an Engine.
type Options struct {
	// TTL is how long a proposed edit stays approvable.
	TTL time.Duration
	// BackupSuffix is appended to the file path for backup copies.
	BackupSuffix string
	// Root, when non-empty, confines every edited path to this directory.
	Root string
	// PatternNoMatch selects the zero-match reporting policy.
	PatternNoMatch NoMatchPolicy
	// MaxFileSize rejects files larger than this many bytes; 0 means no
	// limit.
	MaxFileSize int64
}

// Engine owns the write-to-disk step and composes the pure pieces:
// fingerprints, edit application, diffing, and the pending store.
type Engine struct {
	store *pending.Store
	opts  Options
}

// New creates an engine with its own pending store.
func New(opts Options) *Engine {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = ".bak"
	}
	if opts.PatternNoMatch == "" {
		opts.PatternNoMatch = NoMatchPreview
	}
	return &Engine{store: pending.New(opts.TTL), opts: opts}
}

// NewWithStore creates an engine around an existing store, so tests can
// inject a store with a controlled clock.
func NewWithStore(opts Options, store *pending.Store) *Engine {
	e := New(opts)
	e.store = store
	return e
}

// Preview is the successful outcome of Propose: the edit is parked in the
// store and nothing has been written.
type Preview struct {
	Token         string
	ExpiresAt     time.Time
	Content       string // full resulting file content
	Diff          diff.Summary
	LinesAffected int
}

// Applied is the successful outcome of Approve. It deliberately carries no
// new version token: line numbers and content have shifted, so the caller
// must re-read the file before proposing another edit.
type Applied struct {
	Path          string
	LinesAffected int
	Diff          diff.Summary
}

// Read returns a file's current content and version token. This is the
// observation step agents run before proposing an edit.
func (e *Engine) Read(path string) (string, fingerprint.Token, error) {
	resolved, err := e.resolvePath(path)
	if err != nil {
		return "", fingerprint.Token{}, err
	}
	data, err := e.readFile(resolved)
	if err != nil {
		return "", fingerprint.Token{}, err
	}
	return string(data), fingerprint.Compute(data), nil
}

// Propose validates the caller's version token against the file, applies
// the operation in memory, and parks the result for approval. No
// PendingEdit is created on any failure path.
func (e *Engine) Propose(path string, op edit.Operation, version fingerprint.Token, backup bool) (Preview, error) {
	resolved, err := e.resolvePath(path)
	if err != nil {
		return Preview{}, err
	}
	data, err := e.readFile(resolved)
	if err != nil {
		return Preview{}, err
	}

	current := fingerprint.Compute(data)
	if current != version {
		return Preview{}, fmt.Errorf("%w: %s", ErrVersionConflict, path)
	}

	doc := edit.Parse(string(data))
	newDoc, affected, err := op.Apply(doc)
	if err != nil {
		return Preview{}, err
	}
	if affected == 0 && e.opts.PatternNoMatch == NoMatchError {
		return Preview{}, fmt.Errorf("%w: %s in %s", ErrPatternNotFound, op.Describe(), path)
	}

	resulting := newDoc.Text()
	stored := e.store.Insert(pending.Edit{
		Path:            resolved,
		Op:              op,
		OriginalVersion: current,
		Resulting:       resulting,
		Diff:            diff.Compute(string(data), resulting),
		LinesAffected:   affected,
		Backup:          backup,
	})

	slog.Debug("edit proposed",
		"path", resolved, "op", op.Kind(), "lines", affected, "expires", stored.ExpiresAt)

	return Preview{
		Token:         stored.Token,
		ExpiresAt:     stored.ExpiresAt,
		Content:       resulting,
		Diff:          stored.Diff,
		LinesAffected: affected,
	}, nil
}

// Approve consumes a pending edit and writes it to disk. The confirmation
// literal is checked first and on mismatch the token survives, so the
// caller may retry before expiry. Every other failure past that point has
// consumed the token: the held preview can no longer be trusted and the
// caller must re-propose from a fresh read.
func (e *Engine) Approve(token, confirmation string) (Applied, error) {
	if confirmation != Confirmation {
		return Applied{}, fmt.Errorf("%w: pass %q to apply the edit", ErrConfirmationMismatch, Confirmation)
	}

	ed, outcome := e.store.Take(token)
	switch outcome {
	case pending.TakeNotFound:
		return Applied{}, fmt.Errorf("%w: %s", ErrTokenNotFound, token)
	case pending.TakeExpired:
		return Applied{}, fmt.Errorf("%w: %s", ErrTokenExpired, token)
	}

	data, err := os.ReadFile(ed.Path)
	if err != nil {
		return Applied{}, fmt.Errorf("read %s: %w", ed.Path, err)
	}
	if !ed.OriginalVersion.Matches(data) {
		return Applied{}, fmt.Errorf("%w: %s changed after the edit was proposed", ErrVersionConflict, ed.Path)
	}

	if ed.Backup {
		backupPath := ed.Path + e.opts.BackupSuffix
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return Applied{}, fmt.Errorf("write backup %s: %w", backupPath, err)
		}
	}

	if err := writeFileAtomic(ed.Path, []byte(ed.Resulting)); err != nil {
		return Applied{}, fmt.Errorf("write %s: %w", ed.Path, err)
	}

	slog.Info("edit applied", "path", ed.Path, "op", ed.Op.Kind(), "lines", ed.LinesAffected)

	return Applied{
		Path:          ed.Path,
		LinesAffected: ed.LinesAffected,
		Diff:          ed.Diff,
	}, nil
}

// Cancel removes a pending edit. Safe to call at any time, including
// racing an in-flight Approve; whichever reaches the store first wins.
func (e *Engine) Cancel(token string) bool {
	return e.store.Cancel(token)
}

// ListPending returns summaries of unexpired pending edits.
func (e *Engine) ListPending() []pending.Summary {
	return e.store.PeekAll()
}

func (e *Engine) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}
	if e.opts.MaxFileSize > 0 && info.Size() > e.opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, info.Size(), e.opts.MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
