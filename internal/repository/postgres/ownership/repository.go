package ownership

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	domain "chore-tracker/internal/domain/ownership"
	"gorm.io/gorm"
)

// Repository implements domain.Repository for any gorm model whose ownership
// path is described by a domain.Scope. Authorization is always part of the
// statement itself: reads, updates and deletes carry the ownership predicate
// in their WHERE clause.
type Repository[T any, P interface {
	*T
	domain.Stamper
}] struct {
	db    *gorm.DB
	scope domain.Scope
}

func New[T any, P interface {
	*T
	domain.Stamper
}](db *gorm.DB, scope domain.Scope) *Repository[T, P] {
	return &Repository[T, P]{db: db, scope: scope}
}

func (r *Repository[T, P]) List(ctx context.Context, userID int64, filter domain.Filter) ([]T, error) {
	query, err := r.filtered(r.owned(r.db.WithContext(ctx).Model(new(T)), userID), filter)
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0)
	if err := query.Order(r.column("id") + " asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (r *Repository[T, P]) Get(ctx context.Context, userID, id int64) (*T, error) {
	return r.get(r.db.WithContext(ctx), userID, id)
}

func (r *Repository[T, P]) Create(ctx context.Context, userID, parentID int64, row *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.scope.Parent != nil {
			if err := r.requireParent(tx, userID, parentID); err != nil {
				return err
			}
		}
		P(row).Stamp(userID, parentID)
		return tx.Create(row).Error
	})
}

func (r *Repository[T, P]) Update(ctx context.Context, userID, id int64, changes domain.Changes) (*T, error) {
	if len(changes) == 0 {
		return nil, domain.ErrNoChanges
	}
	for column := range changes {
		if !r.scope.CanChange(column) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownColumn, column)
		}
	}

	var updated *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if value, ok := changes[r.scope.ParentColumn]; ok && r.scope.Parent != nil {
			parentID, ok := value.(int64)
			if !ok {
				return fmt.Errorf("%w: %s must be an id", domain.ErrValidation, r.scope.ParentColumn)
			}
			if err := r.requireParent(tx, userID, parentID); err != nil {
				return err
			}
		}

		result := r.owned(tx.Model(new(T)).Where(r.column("id")+" = ?", id), userID).
			Updates(map[string]any(changes))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		row, err := r.get(tx, userID, id)
		if err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository[T, P]) Delete(ctx context.Context, userID, id int64) error {
	result := r.owned(r.db.WithContext(ctx).Where(r.column("id")+" = ?", id), userID).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository[T, P]) get(db *gorm.DB, userID, id int64) (*T, error) {
	var row T
	err := r.owned(db.Model(new(T)).Where(r.column("id")+" = ?", id), userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T, P]) requireParent(tx *gorm.DB, userID, parentID int64) error {
	parent := *r.scope.Parent
	var count int64
	err := ownedBy(tx.Table(parent.Table).Where(parent.Table+".id = ?", parentID), parent, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrParentNotFound
	}
	return nil
}

func (r *Repository[T, P]) owned(db *gorm.DB, userID int64) *gorm.DB {
	return ownedBy(db, r.scope, userID)
}

func (r *Repository[T, P]) filtered(db *gorm.DB, filter domain.Filter) (*gorm.DB, error) {
	columns := make([]string, 0, len(filter))
	for column := range filter {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		if !r.scope.CanFilter(column) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownColumn, column)
		}
		value := filter[column]
		if isSlice(value) {
			db = db.Where(r.column(column)+" IN ?", value)
			continue
		}
		db = db.Where(r.column(column)+" = ?", value)
	}
	return db, nil
}

func (r *Repository[T, P]) column(name string) string {
	return r.scope.Table + "." + name
}

// ownedBy appends the ownership predicate of scope. Transitive scopes become
// a subquery over the parent table, itself scoped the same way.
func ownedBy(db *gorm.DB, scope domain.Scope, userID int64) *gorm.DB {
	if scope.Direct() {
		return db.Where(scope.Table+"."+scope.OwnerColumn+" = ?", userID)
	}

	parent := *scope.Parent
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table(parent.Table).
		Select(parent.Table + ".id")
	sub = ownedBy(sub, parent, userID)

	return db.Where(scope.Table+"."+scope.ParentColumn+" IN (?)", sub)
}

func isSlice(value any) bool {
	if value == nil {
		return false
	}
	kind := reflect.TypeOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}
