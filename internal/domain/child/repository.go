package child

import (
	"context"

	"chore-tracker/internal/domain/chore"
	"chore-tracker/internal/domain/ownership"
)

type Repository = ownership.Repository[Child]

// ChoreLoader loads chores for expansion. It is expected to apply its own
// ownership scope.
type ChoreLoader interface {
	ByChildren(ctx context.Context, userID int64, childIDs []int64) (map[int64][]chore.Chore, error)
}
