package web

import "github.com/pkg/errors"

// Error is a trusted request error: safe to show to the client, carrying the
// HTTP status the response should use.
type Error struct {
	Err    error
	Status int
}

// NewRequestError wraps a known, safe error with its response status.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// GetError unwraps err looking for a trusted *Error; nil when err is an
// untrusted internal error.
func GetError(err error) *Error {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr
	}
	return nil
}
