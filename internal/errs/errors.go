package errs

import "errors"

// Domain error taxonomy. Controllers map these to HTTP status codes;
// everything else that bubbles up from a collaborator is treated as an
// infrastructure failure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("invalid email or password")
)

// IsNotFound reports whether err is a not-found condition.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err indicates a uniqueness conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsForbidden reports whether err indicates an ownership mismatch.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }
