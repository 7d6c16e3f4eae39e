package user

import (
	"context"
	"time"

	"Food-Rescue-Backend/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetActiveUsers(ctx context.Context) ([]*entities.User, error)
		SoftDeleteUser(ctx context.Context, id string, deletedAt time.Time) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID resolves a user that has not been soft-deleted. A deleted or
// unknown id yields gorm.ErrRecordNotFound.
func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetActiveUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Select("id", "name", "email", "role", "created_at").
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) SoftDeleteUser(ctx context.Context, id string, deletedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", deletedAt.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
