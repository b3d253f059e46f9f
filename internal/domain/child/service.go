package child

import (
	"context"
	"fmt"
	"strings"

	"chore-tracker/internal/domain/chore"
	"chore-tracker/internal/domain/ownership"
)

type Service struct {
	repo   Repository
	chores ChoreLoader
}

func NewService(repo Repository, chores ChoreLoader) *Service {
	return &Service{repo: repo, chores: chores}
}

func (s *Service) List(ctx context.Context, userID int64, filter ListFilter, expand bool) ([]Expanded, error) {
	where := ownership.Filter{}
	if filter.FamilyID != nil {
		where["family_id"] = *filter.FamilyID
	}

	children, err := s.repo.List(ctx, userID, where)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, userID, children, expand)
}

// ByFamilies returns the caller's children of the given families, each with
// its chores, keyed by family id. Families without children map to an empty
// slice.
func (s *Service) ByFamilies(ctx context.Context, userID int64, familyIDs []int64) (map[int64][]Expanded, error) {
	result := make(map[int64][]Expanded, len(familyIDs))
	for _, id := range familyIDs {
		result[id] = []Expanded{}
	}
	if len(familyIDs) == 0 {
		return result, nil
	}

	children, err := s.repo.List(ctx, userID, ownership.Filter{"family_id": familyIDs})
	if err != nil {
		return nil, err
	}
	expanded, err := s.expand(ctx, userID, children, true)
	if err != nil {
		return nil, err
	}

	for _, item := range expanded {
		if _, ok := result[item.FamilyID]; !ok {
			continue
		}
		result[item.FamilyID] = append(result[item.FamilyID], item)
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64, expand bool) (*Expanded, error) {
	child, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	expanded, err := s.expand(ctx, userID, []Child{*child}, expand)
	if err != nil {
		return nil, err
	}
	return &expanded[0], nil
}

func (s *Service) Create(ctx context.Context, userID int64, input CreateInput) (*Child, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ownership.ErrValidation)
	}
	if input.FamilyID <= 0 {
		return nil, fmt.Errorf("%w: family_id is required", ownership.ErrValidation)
	}

	child := Child{Name: name}
	if err := s.repo.Create(ctx, userID, input.FamilyID, &child); err != nil {
		return nil, err
	}
	return &child, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, input UpdateInput) (*Child, error) {
	changes := ownership.Changes{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ownership.ErrValidation)
		}
		changes["name"] = name
	}
	if input.FamilyID != nil {
		changes["family_id"] = *input.FamilyID
	}
	if len(changes) == 0 {
		return nil, ownership.ErrNoChanges
	}
	return s.repo.Update(ctx, userID, id, changes)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) expand(ctx context.Context, userID int64, children []Child, withChores bool) ([]Expanded, error) {
	result := make([]Expanded, 0, len(children))
	for _, child := range children {
		result = append(result, Expanded{Child: child})
	}
	if !withChores || len(children) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	chores, err := s.chores.ByChildren(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		items := chores[result[i].ID]
		if items == nil {
			items = []chore.Chore{}
		}
		result[i].Chores = items
	}
	return result, nil
}
