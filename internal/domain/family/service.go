package family

import (
	"context"
	"fmt"
	"strings"

	"chore-tracker/internal/domain/child"
	"chore-tracker/internal/domain/ownership"
)

type Service struct {
	repo     Repository
	children ChildLoader
}

func NewService(repo Repository, children ChildLoader) *Service {
	return &Service{repo: repo, children: children}
}

func (s *Service) List(ctx context.Context, userID int64, expand bool) ([]Expanded, error) {
	families, err := s.repo.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, userID, families, expand)
}

func (s *Service) Get(ctx context.Context, userID, id int64, expand bool) (*Expanded, error) {
	family, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	expanded, err := s.expand(ctx, userID, []Family{*family}, expand)
	if err != nil {
		return nil, err
	}
	return &expanded[0], nil
}

func (s *Service) Create(ctx context.Context, userID int64, input CreateInput) (*Family, error) {
	surname := strings.TrimSpace(input.Surname)
	if surname == "" {
		return nil, fmt.Errorf("%w: surname is required", ownership.ErrValidation)
	}

	family := Family{Surname: surname}
	if err := s.repo.Create(ctx, userID, 0, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, input UpdateInput) (*Family, error) {
	if input.Surname == nil {
		return nil, ownership.ErrNoChanges
	}
	surname := strings.TrimSpace(*input.Surname)
	if surname == "" {
		return nil, fmt.Errorf("%w: surname must not be empty", ownership.ErrValidation)
	}
	return s.repo.Update(ctx, userID, id, ownership.Changes{"surname": surname})
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) expand(ctx context.Context, userID int64, families []Family, withChildren bool) ([]Expanded, error) {
	result := make([]Expanded, 0, len(families))
	for _, family := range families {
		result = append(result, Expanded{Family: family})
	}
	if !withChildren || len(families) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(families))
	for _, family := range families {
		ids = append(ids, family.ID)
	}

	children, err := s.children.ByFamilies(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		items := children[result[i].ID]
		if items == nil {
			items = []child.Expanded{}
		}
		result[i].Children = items
	}
	return result, nil
}
