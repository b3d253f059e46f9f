package user

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	FindUserIDByToken(ctx context.Context, token string) (int64, bool, error)
	// SetToken replaces the user's current token in a single statement.
	SetToken(ctx context.Context, id int64, token string) error
	// ClearToken clears the current token only if it still equals token.
	ClearToken(ctx context.Context, id int64, token string) (bool, error)
	Update(ctx context.Context, id int64, changes map[string]any) error
	Delete(ctx context.Context, id int64) error
}
