package ledger

import "errors"

// Error kinds surfaced by the engine. Every operation runs inside a single
// database transaction; whenever one of these is returned the whole unit was
// rolled back, so callers never observe a partial balance change.
//
// ErrConflict is the only kind that is safe to retry; the rest are terminal
// for the request. Wrapped errors carry detail, classify with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("conflict")
)
