// Package pending holds proposed-but-unapplied edits keyed by single-use
// approval token.
//
// The store is the only shared mutable structure in the engine. Every
// operation is atomic under one mutex, so two callers can never both take
// the same token. Expiry is enforced lazily at access time; there is no
// background sweeper, because pending-edit volume is low and staleness only
// matters when someone acts on a token.
package pending

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpl-au/editd/internal/diff"
	"github.com/jpl-au/editd/internal/edit"
	"github.com/jpl-au/editd/internal/fingerprint"
)

// Edit is a proposed edit whose result has been computed but not written.
// The store owns it from Insert until it is taken, cancelled, or evicted.
type Edit struct {
	Token           string
	Path            string
	Op              edit.Operation
	OriginalVersion fingerprint.Token
	Resulting       string // full post-edit file content
	Diff            diff.Summary
	LinesAffected   int
	CreatedAt       time.Time
	ExpiresAt       time.Time
	Backup          bool
}

// Summary is the lightweight listing form of a pending edit: no preview
// content, just enough to identify it.
type Summary struct {
	Token     string    `json:"approval_token"`
	Path      string    `json:"path"`
	Kind      string    `json:"operation"`
	Span      string    `json:"span"`
	CreatedAt time.Time `json:"created_at"`
}

// TakeOutcome reports what Take found.
type TakeOutcome int

const (
	// TakeOK means the edit was returned and removed.
	TakeOK TakeOutcome = iota
	// TakeNotFound means the token is unknown or already consumed.
	TakeNotFound
	// TakeExpired means the edit's TTL elapsed; the entry has been evicted.
	TakeExpired
)

// Store is a thread-safe registry of pending edits.
type Store struct {
	mu    sync.Mutex
	edits map[string]Edit
	ttl   time.Duration
	now   func() time.Time
}

// New creates a store whose entries live for ttl.
func New(ttl time.Duration) *Store {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock creates a store with an injected time source, so tests can
// control expiry without sleeping.
func NewWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{
		edits: make(map[string]Edit),
		ttl:   ttl,
		now:   now,
	}
}

// Insert stores the edit and returns it with token and timestamps filled
// in. A missing token is generated (crypto-random UUID, unguessable).
func (s *Store) Insert(e Edit) Edit {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Token == "" {
		e.Token = uuid.NewString()
	}
	now := s.now()
	e.CreatedAt = now
	e.ExpiresAt = now.Add(s.ttl)
	s.edits[e.Token] = e
	return e
}

// Take removes and returns the edit for token. Single-use: a second Take on
// the same token reports TakeNotFound. An entry past its expiry is evicted
// and reported TakeExpired rather than returned.
func (s *Store) Take(token string) (Edit, TakeOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.edits[token]
	if !ok {
		return Edit{}, TakeNotFound
	}
	delete(s.edits, token)
	if s.now().After(e.ExpiresAt) {
		return Edit{}, TakeExpired
	}
	return e, TakeOK
}

// Cancel removes the edit without consuming it for approval. Idempotent:
// returns false when the token is not present.
func (s *Store) Cancel(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.edits[token]
	delete(s.edits, token)
	return ok
}

// PeekAll evicts expired entries, then returns summaries of the remaining
// pending edits ordered by creation time.
func (s *Store) PeekAll() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []Summary
	for token, e := range s.edits {
		if now.After(e.ExpiresAt) {
			delete(s.edits, token)
			continue
		}
		out = append(out, Summary{
			Token:     e.Token,
			Path:      e.Path,
			Kind:      e.Op.Kind(),
			Span:      e.Op.Describe(),
			CreatedAt: e.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Token < out[j].Token
	})
	return out
}
