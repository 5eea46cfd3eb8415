package backend

import (
	"errors"
	"fmt"
)

// Error taxonomy of the data-access interface. Adapters wrap transport
// detail around these sentinels so callers can branch with errors.Is.
var (
	// ErrNotFound means the mutation target no longer exists upstream.
	ErrNotFound = errors.New("record not found")
	// ErrValidation means the backend rejected the submitted fields.
	ErrValidation = errors.New("invalid record data")
	// ErrUnexpectedStatus covers responses outside the API contract.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// StatusError wraps ErrUnexpectedStatus with the offending code.
func StatusError(code int) error {
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
}
