package pending

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/editd/internal/diff"
	"github.com/jpl-au/editd/internal/edit"
	"github.com/jpl-au/editd/internal/fingerprint"
)

// fakeClock is a settable time source for TTL tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func sampleEdit(path string) Edit {
	return Edit{
		Path:            path,
		Op:              edit.ReplaceLines{Span: edit.LineRange{Start: 1, End: 2}, NewText: "x"},
		OriginalVersion: fingerprint.Compute([]byte("original")),
		Resulting:       "x\n",
		Diff:            diff.Compute("a\nb\n", "x\n"),
		LinesAffected:   2,
	}
}

func TestInsertGeneratesDistinctTokens(t *testing.T) {
	s := New(time.Minute)

	a := s.Insert(sampleEdit("a.txt"))
	b := s.Insert(sampleEdit("a.txt"))

	assert.NotEmpty(t, a.Token)
	assert.NotEmpty(t, b.Token)
	assert.NotEqual(t, a.Token, b.Token)
	assert.Equal(t, a.CreatedAt.Add(time.Minute), a.ExpiresAt)
}

func TestTakeIsSingleUse(t *testing.T) {
	s := New(time.Minute)
	e := s.Insert(sampleEdit("a.txt"))

	got, outcome := s.Take(e.Token)
	require.Equal(t, TakeOK, outcome)
	assert.Equal(t, "a.txt", got.Path)
	assert.Equal(t, 2, got.LinesAffected)

	_, outcome = s.Take(e.Token)
	assert.Equal(t, TakeNotFound, outcome)
}

func TestTakeUnknownToken(t *testing.T) {
	s := New(time.Minute)
	_, outcome := s.Take("no-such-token")
	assert.Equal(t, TakeNotFound, outcome)
}

func TestTakeExpired(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(time.Minute, clock.now)
	e := s.Insert(sampleEdit("a.txt"))

	clock.advance(time.Minute + time.Second)

	_, outcome := s.Take(e.Token)
	assert.Equal(t, TakeExpired, outcome)

	// eviction happened: a retry is NotFound, not Expired
	_, outcome = s.Take(e.Token)
	assert.Equal(t, TakeNotFound, outcome)
}

func TestTakeJustBeforeExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(time.Minute, clock.now)
	e := s.Insert(sampleEdit("a.txt"))

	clock.advance(time.Minute) // exactly at expiry, not past it

	_, outcome := s.Take(e.Token)
	assert.Equal(t, TakeOK, outcome)
}

func TestCancelIdempotent(t *testing.T) {
	s := New(time.Minute)
	e := s.Insert(sampleEdit("a.txt"))

	assert.True(t, s.Cancel(e.Token))
	assert.False(t, s.Cancel(e.Token))
	assert.False(t, s.Cancel("never-existed"))

	_, outcome := s.Take(e.Token)
	assert.Equal(t, TakeNotFound, outcome)
}

func TestPeekAllOmitsExpired(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(time.Minute, clock.now)

	old := s.Insert(sampleEdit("old.txt"))
	clock.advance(30 * time.Second)
	fresh := s.Insert(sampleEdit("fresh.txt"))
	clock.advance(45 * time.Second) // old is now past TTL, fresh is not

	got := s.PeekAll()
	require.Len(t, got, 1)
	assert.Equal(t, fresh.Token, got[0].Token)
	assert.Equal(t, "fresh.txt", got[0].Path)
	assert.Equal(t, edit.KindReplaceLines, got[0].Kind)
	assert.Equal(t, "lines 1:2", got[0].Span)

	// expired entry was evicted, not just hidden
	_, outcome := s.Take(old.Token)
	assert.Equal(t, TakeNotFound, outcome)
}

func TestPeekAllOrderedByCreation(t *testing.T) {
	clock := newFakeClock()
	s := NewWithClock(time.Hour, clock.now)

	first := s.Insert(sampleEdit("1.txt"))
	clock.advance(time.Second)
	second := s.Insert(sampleEdit("2.txt"))
	clock.advance(time.Second)
	third := s.Insert(sampleEdit("3.txt"))

	got := s.PeekAll()
	require.Len(t, got, 3)
	assert.Equal(t, []string{first.Token, second.Token, third.Token},
		[]string{got[0].Token, got[1].Token, got[2].Token})
}

func TestPeekAllHasNoPreviewContent(t *testing.T) {
	s := New(time.Minute)
	s.Insert(sampleEdit("a.txt"))

	got := s.PeekAll()
	require.Len(t, got, 1)
	// Summary is a value type with no content fields; spot-check the span
	// stays a locator, not a preview.
	assert.NotContains(t, got[0].Span, "x\n")
}

func TestConcurrentTakeSingleWinner(t *testing.T) {
	s := New(time.Minute)
	e := s.Insert(sampleEdit("a.txt"))

	const callers = 32
	var wg sync.WaitGroup
	results := make(chan TakeOutcome, callers)

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, outcome := s.Take(e.Token)
			results <- outcome
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for outcome := range results {
		if outcome == TakeOK {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one caller may take a token")
}

func TestMultiplePendingEditsSameFile(t *testing.T) {
	s := New(time.Minute)
	a := s.Insert(sampleEdit("same.txt"))
	b := s.Insert(sampleEdit("same.txt"))

	assert.Len(t, s.PeekAll(), 2)

	_, outcome := s.Take(a.Token)
	assert.Equal(t, TakeOK, outcome)
	_, outcome = s.Take(b.Token)
	assert.Equal(t, TakeOK, outcome)
}
