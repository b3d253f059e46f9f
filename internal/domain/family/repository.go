package family

import (
	"context"

	"chore-tracker/internal/domain/child"
	"chore-tracker/internal/domain/ownership"
)

type Repository = ownership.Repository[Family]

// ChildLoader loads children for expansion. It is expected to apply its own
// ownership scope.
type ChildLoader interface {
	ByFamilies(ctx context.Context, userID int64, familyIDs []int64) (map[int64][]child.Expanded, error)
}
