package ownership

import "context"

// Filter narrows a List with column equality. Slice values match any element.
type Filter map[string]any

// Changes maps column names to their new values for Update.
type Changes map[string]any

// Stamper is implemented by records whose ownership fields are set from
// trusted parameters at creation time.
type Stamper interface {
	Stamp(userID, parentID int64)
}

// Repository is the ownership-scoped access contract shared by every
// resource type. Every method takes the authenticated user id and only ever
// touches rows whose ownership chain resolves to that user.
type Repository[T any] interface {
	List(ctx context.Context, userID int64, filter Filter) ([]T, error)
	Get(ctx context.Context, userID, id int64) (*T, error)
	Create(ctx context.Context, userID, parentID int64, row *T) error
	Update(ctx context.Context, userID, id int64, changes Changes) (*T, error)
	Delete(ctx context.Context, userID, id int64) error
}
