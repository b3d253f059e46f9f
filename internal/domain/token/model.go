package token

import "time"

// Subject is the user a token is issued for.
type Subject struct {
	UserID int64
	Name   string
	Email  string
}

// Identity is what a verified token proves about the caller.
type Identity struct {
	UserID    int64
	Name      string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
