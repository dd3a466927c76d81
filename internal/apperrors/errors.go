// Package apperrors defines the error taxonomy shared by the interaction
// engine, the query service and the GraphQL facade.
package apperrors

import "errors"

var (
	// ErrNotFound means a referenced post, comment, like or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated means a mutating operation was attempted anonymously.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the caller is authenticated but is not allowed to
	// modify the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict signals a uniqueness-constraint violation. It is internal
	// control flow for the like toggle race and must never reach a caller.
	ErrConflict = errors.New("conflict")

	// ErrInvalid means the arguments were malformed, e.g. empty content.
	ErrInvalid = errors.New("invalid input")
)

// IsTaxonomy reports whether err belongs to the known taxonomy, i.e. carries
// a message that is safe to show to an external caller.
func IsTaxonomy(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalid)
}
