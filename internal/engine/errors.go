// errors.go defines the engine's failure taxonomy as sentinel errors.
//
// Sentinels (not error types) because callers only branch on the category;
// detailed messages come from wrapping with fmt.Errorf at the failure site
// and are matched with errors.Is.

package engine

import "errors"

var (
	// ErrVersionConflict means the caller's view of the file is stale: the
	// content changed between their read and this operation.
	ErrVersionConflict = errors.New("version conflict: file changed since it was read")
	// ErrTokenNotFound means the approval token is unknown or was already
	// consumed.
	ErrTokenNotFound = errors.New("approval token not found")
	// ErrTokenExpired means the pending edit's TTL elapsed before approval.
	ErrTokenExpired = errors.New("approval token expired")
	// ErrConfirmationMismatch means the approve call did not carry the
	// exact confirmation literal. The token is not consumed.
	ErrConfirmationMismatch = errors.New("confirmation mismatch")
	// ErrPatternNotFound means a pattern replace matched nothing and the
	// engine is configured to treat that as a failure.
	ErrPatternNotFound = errors.New("pattern not found")
	// ErrOutsideRoot means the path escapes the configured root directory.
	ErrOutsideRoot = errors.New("path outside configured root")
	// ErrFileTooLarge means the file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)
