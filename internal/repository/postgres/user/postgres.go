package user

import (
	"context"
	"errors"

	domain "chore-tracker/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *PostgresRepository) FindUserIDByToken(ctx context.Context, token string) (int64, bool, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Select("id").
		Where("token = ?", token).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return user.ID, true, nil
}

func (r *PostgresRepository) SetToken(ctx context.Context, id int64, token string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearToken(ctx context.Context, id int64, token string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND token = ?", id, token).
		Update("token", nil)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(changes)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) first(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where(query, args...).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
