package chore

import (
	"context"
	"fmt"
	"strings"

	"chore-tracker/internal/domain/ownership"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int64, filter ListFilter) ([]Chore, error) {
	where := ownership.Filter{}
	if filter.ChildID != nil {
		where["child_id"] = *filter.ChildID
	}
	if filter.Completed != nil {
		where["completed"] = *filter.Completed
	}
	return s.repo.List(ctx, userID, where)
}

// ByChildren returns the caller's chores for every given child, keyed by
// child id. Children without chores map to an empty slice.
func (s *Service) ByChildren(ctx context.Context, userID int64, childIDs []int64) (map[int64][]Chore, error) {
	result := make(map[int64][]Chore, len(childIDs))
	for _, id := range childIDs {
		result[id] = []Chore{}
	}
	if len(childIDs) == 0 {
		return result, nil
	}

	chores, err := s.repo.List(ctx, userID, ownership.Filter{"child_id": childIDs})
	if err != nil {
		return nil, err
	}
	for _, chore := range chores {
		if _, ok := result[chore.ChildID]; !ok {
			continue
		}
		result[chore.ChildID] = append(result[chore.ChildID], chore)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Chore, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID int64, input CreateInput) (*Chore, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ownership.ErrValidation)
	}
	if input.ChildID <= 0 {
		return nil, fmt.Errorf("%w: child_id is required", ownership.ErrValidation)
	}

	chore := Chore{
		Title:       title,
		DueDate:     input.DueDate,
		Completed:   input.Completed,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, userID, input.ChildID, &chore); err != nil {
		return nil, err
	}
	return &chore, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, input UpdateInput) (*Chore, error) {
	changes := ownership.Changes{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ownership.ErrValidation)
		}
		changes["title"] = title
	}
	if input.ChildID != nil {
		changes["child_id"] = *input.ChildID
	}
	switch {
	case input.ClearDueDate:
		changes["due_date"] = nil
	case input.DueDate != nil:
		changes["due_date"] = *input.DueDate
	}
	if input.Completed != nil {
		changes["completed"] = *input.Completed
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if len(changes) == 0 {
		return nil, ownership.ErrNoChanges
	}
	return s.repo.Update(ctx, userID, id, changes)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
