package catalog

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey reports a missing or blank lookup key. No store access
	// happens before it is returned.
	ErrInvalidKey = errors.New("catalog: lookup key is required")

	// ErrNotFound reports a well-formed lookup that matched no document.
	ErrNotFound = errors.New("catalog: not found")

	// ErrUnavailable reports a store connection or query failure. Reads are
	// idempotent so callers may retry.
	ErrUnavailable = errors.New("catalog: store unavailable")
)

// unavailable wraps err so that errors.Is matches both ErrUnavailable and the
// original cause. Not-found and input errors pass through untouched.
func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidKey) || errors.Is(err, ErrUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s timed out: %w", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
