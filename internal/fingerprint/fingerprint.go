// Package fingerprint computes content-addressed version tokens for files.
//
// A token is the blake2b-256 digest of a file's byte content, rendered as
// 64 hex characters. Tokens act as the optimistic-concurrency marker for
// edits: two tokens are equal iff the bytes were identical when each was
// computed. Content hashing avoids the false conflicts of mtime comparison
// (touch without modify) and the false negatives of filesystems with coarse
// mtime resolution.
package fingerprint

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Size is the digest width in bytes.
const Size = 32

// ErrInvalidToken is returned when a token string cannot be parsed.
var ErrInvalidToken = errors.New("invalid version token")

// Token is a content-derived version marker. It wraps the raw digest rather
// than a string so that it can only be compared with other tokens, never
// accidentally with unrelated strings.
type Token [Size]byte

// Compute returns the token for the given content. Pure and deterministic;
// no caching, so the answer is never stale.
func Compute(data []byte) Token {
	return Token(blake2b.Sum256(data))
}

// Matches recomputes the token for data and compares.
func (t Token) Matches(data []byte) bool {
	return t == Compute(data)
}

// String renders the token as lowercase hex.
func (t Token) String() string {
	return hex.EncodeToString(t[:])
}

// Parse converts a hex string back into a Token. Length and alphabet are
// checked strictly so that truncated or corrupted tokens are rejected
// rather than silently failing to match.
func Parse(s string) (Token, error) {
	var t Token
	if len(s) != hex.EncodedLen(Size) {
		return t, fmt.Errorf("%w: want %d hex characters, got %d", ErrInvalidToken, hex.EncodedLen(Size), len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return t, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	copy(t[:], b)
	return t, nil
}
