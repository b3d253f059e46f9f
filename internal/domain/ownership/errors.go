package ownership

import "errors"

var (
	// ErrNotFound covers both "does not exist" and "owned by someone else".
	// Callers must not be able to tell the two apart.
	ErrNotFound       = errors.New("not found")
	ErrParentNotFound = errors.New("parent not found")
	ErrNoChanges      = errors.New("no fields to update")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrValidation     = errors.New("validation failed")
)
