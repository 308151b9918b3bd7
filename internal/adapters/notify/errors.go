package notify

import "github.com/cockroachdb/errors"

var (
	// ErrInternal is returned when the request could not be built.
	ErrInternal = errors.New("notify client: internal error")

	// ErrInvalidResponse is returned when the service answers with something unreadable.
	ErrInvalidResponse = errors.New("notify client: invalid response")
)
