package user

import (
	"context"
	"errors"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/internal/utils/cache"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

type (
	UserService interface {
		GetAllUsers(ctx context.Context) ([]domain.AdminUser, error)
		DeleteUser(ctx context.Context, id string) error
	}

	userService struct {
		userRepository UserRepository
		cache          *cache.Store
		clock          clockwork.Clock
	}
)

func NewUserService(userRepository UserRepository, store *cache.Store, clock clockwork.Clock) UserService {
	return &userService{
		userRepository: userRepository,
		cache:          store,
		clock:          clock,
	}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.AdminUser, error) {
	return cache.Remember(ctx, s.cache, cache.KeyAdminUsers, cache.TTLAdminUsers, func(ctx context.Context) ([]domain.AdminUser, error) {
		users, err := s.userRepository.GetActiveUsers(ctx)
		if err != nil {
			return nil, err
		}

		result := make([]domain.AdminUser, 0, len(users))
		for _, u := range users {
			result = append(result, domain.AdminUser{
				ID:        u.ID.String(),
				Name:      u.Name,
				Email:     u.Email,
				Role:      u.Role,
				CreatedAt: u.CreatedAt,
			})
		}
		return result, nil
	})
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	if err := s.userRepository.SoftDeleteUser(ctx, id, s.clock.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	s.cache.Invalidate(ctx, cache.KeyAdminUsers)
	return nil
}
