package token

import "errors"

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	// ErrUnknownToken means the token is not the current token of any user:
	// it was superseded by a later login or cleared by logout.
	ErrUnknownToken = errors.New("token unknown")
)
