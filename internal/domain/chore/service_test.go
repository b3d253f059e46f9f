package chore

import (
	"context"
	"testing"
	"time"

	"chore-tracker/internal/domain/ownership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChoreRepo struct {
	chores     map[int64]*Chore
	childOwner map[int64]int64
	nextID     int64
	filters    []ownership.Filter
	changes    []ownership.Changes
}

func newFakeChoreRepo() *fakeChoreRepo {
	return &fakeChoreRepo{
		chores:     make(map[int64]*Chore),
		childOwner: make(map[int64]int64),
	}
}

func (r *fakeChoreRepo) List(ctx context.Context, userID int64, filter ownership.Filter) ([]Chore, error) {
	r.filters = append(r.filters, filter)
	result := make([]Chore, 0)
	for id := int64(1); id <= r.nextID; id++ {
		chore, ok := r.chores[id]
		if !ok || chore.OwnerUserID != userID {
			continue
		}
		switch value := filter["child_id"].(type) {
		case int64:
			if chore.ChildID != value {
				continue
			}
		case []int64:
			matched := false
			for _, childID := range value {
				matched = matched || childID == chore.ChildID
			}
			if !matched {
				continue
			}
		}
		if completed, ok := filter["completed"].(bool); ok && chore.Completed != completed {
			continue
		}
		result = append(result, *chore)
	}
	return result, nil
}

func (r *fakeChoreRepo) Get(ctx context.Context, userID, id int64) (*Chore, error) {
	chore, ok := r.chores[id]
	if !ok || chore.OwnerUserID != userID {
		return nil, ownership.ErrNotFound
	}
	copied := *chore
	return &copied, nil
}

func (r *fakeChoreRepo) Create(ctx context.Context, userID, parentID int64, row *Chore) error {
	if r.childOwner[parentID] != userID {
		return ownership.ErrParentNotFound
	}
	r.nextID++
	row.ID = r.nextID
	row.Stamp(userID, parentID)
	stored := *row
	r.chores[row.ID] = &stored
	return nil
}

func (r *fakeChoreRepo) Update(ctx context.Context, userID, id int64, changes ownership.Changes) (*Chore, error) {
	r.changes = append(r.changes, changes)
	chore, ok := r.chores[id]
	if !ok || chore.OwnerUserID != userID {
		return nil, ownership.ErrNotFound
	}
	if completed, ok := changes["completed"].(bool); ok {
		chore.Completed = completed
	}
	if title, ok := changes["title"].(string); ok {
		chore.Title = title
	}
	if value, ok := changes["due_date"]; ok {
		chore.DueDate = nil
		if due, ok := value.(time.Time); ok {
			chore.DueDate = &due
		}
	}
	copied := *chore
	return &copied, nil
}

func (r *fakeChoreRepo) Delete(ctx context.Context, userID, id int64) error {
	chore, ok := r.chores[id]
	if !ok || chore.OwnerUserID != userID {
		return ownership.ErrNotFound
	}
	delete(r.chores, id)
	return nil
}

func TestCreateChore(t *testing.T) {
	repo := newFakeChoreRepo()
	repo.childOwner[5] = 1
	svc := NewService(repo)
	ctx := context.Background()

	due := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, 1, CreateInput{ChildID: 5, Title: " Dishes ", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "Dishes", created.Title)
	assert.Equal(t, int64(1), created.OwnerUserID)
	assert.Equal(t, int64(5), created.ChildID)
	assert.False(t, created.Completed)

	_, err = svc.Create(ctx, 2, CreateInput{ChildID: 5, Title: "Sneaky"})
	assert.ErrorIs(t, err, ownership.ErrParentNotFound)

	_, err = svc.Create(ctx, 1, CreateInput{ChildID: 5})
	assert.ErrorIs(t, err, ownership.ErrValidation)
}

func TestListTranslatesFilter(t *testing.T) {
	repo := newFakeChoreRepo()
	repo.childOwner[5] = 1
	repo.childOwner[6] = 1
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateInput{ChildID: 5, Title: "Dishes", Completed: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateInput{ChildID: 6, Title: "Laundry"})
	require.NoError(t, err)

	completed := true
	chores, err := svc.List(ctx, 1, ListFilter{Completed: &completed})
	require.NoError(t, err)
	require.Len(t, chores, 1)
	assert.Equal(t, "Dishes", chores[0].Title)

	childID := int64(6)
	chores, err = svc.List(ctx, 1, ListFilter{ChildID: &childID})
	require.NoError(t, err)
	require.Len(t, chores, 1)
	assert.Equal(t, ownership.Filter{"child_id": int64(6)}, repo.filters[len(repo.filters)-1])
}

func TestByChildrenGroupsAndDefaults(t *testing.T) {
	repo := newFakeChoreRepo()
	repo.childOwner[5] = 1
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateInput{ChildID: 5, Title: "Dishes"})
	require.NoError(t, err)

	grouped, err := svc.ByChildren(ctx, 1, []int64{5, 6})
	require.NoError(t, err)
	assert.Len(t, grouped[5], 1)
	assert.NotNil(t, grouped[6])
	assert.Empty(t, grouped[6])

	empty, err := svc.ByChildren(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateChore(t *testing.T) {
	repo := newFakeChoreRepo()
	repo.childOwner[5] = 1
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateInput{ChildID: 5, Title: "Dishes"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 1, created.ID, UpdateInput{})
	assert.ErrorIs(t, err, ownership.ErrNoChanges)

	done := true
	_, err = svc.Update(ctx, 2, created.ID, UpdateInput{Completed: &done})
	assert.ErrorIs(t, err, ownership.ErrNotFound)

	updated, err := svc.Update(ctx, 1, created.ID, UpdateInput{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, ownership.Changes{"completed": true}, repo.changes[len(repo.changes)-1])

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ownership.ErrNotFound)
}

func TestUpdateClearsDueDate(t *testing.T) {
	repo := newFakeChoreRepo()
	repo.childOwner[5] = 1
	svc := NewService(repo)
	ctx := context.Background()

	due := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, 1, CreateInput{ChildID: 5, Title: "Dishes", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, created.DueDate)

	later := due.AddDate(0, 0, 7)
	updated, err := svc.Update(ctx, 1, created.ID, UpdateInput{DueDate: &later, ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, ownership.Changes{"due_date": nil}, repo.changes[len(repo.changes)-1])

	updated, err = svc.Update(ctx, 1, created.ID, UpdateInput{DueDate: &later})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, later.Equal(*updated.DueDate))
}
