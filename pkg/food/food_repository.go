package food

import (
	"context"
	"strings"
	"time"

	"Food-Rescue-Backend/entities"

	"gorm.io/gorm"
)

type (
	FoodFilter struct {
		Search   string
		Category string
		City     string
	}

	FoodRepository interface {
		CreateFood(ctx context.Context, food *entities.Food) error
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		GetFoods(ctx context.Context, filter FoodFilter, orders []string, offset, limit int) ([]*entities.Food, int64, error)
		GetAvailableFoods(ctx context.Context, now time.Time) ([]*entities.Food, error)
		GetClaimableFoods(ctx context.Context, now time.Time) ([]*entities.Food, error)

		// Batch transitions
		ExpireStaleFoods(ctx context.Context, now time.Time) (int64, error)
		DeleteFoodsByStatus(ctx context.Context, status string) (int64, error)
		DeleteStaleAvailableFoods(ctx context.Context, now time.Time) (int64, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) GetFoods(ctx context.Context, filter FoodFilter, orders []string, offset, limit int) ([]*entities.Food, int64, error) {
	var foods []*entities.Food
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Food{})
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	for _, order := range orders {
		query = query.Order(order)
	}
	if err := query.Offset(offset).Limit(limit).Find(&foods).Error; err != nil {
		return nil, 0, err
	}

	return foods, count, nil
}

func (r *foodRepository) GetAvailableFoods(ctx context.Context, now time.Time) ([]*entities.Food, error) {
	var foods []*entities.Food
	if err := r.db.WithContext(ctx).
		Select("id", "title", "quantity", "category", "city", "image_url", "expiry_time", "donate_ready", "created_at").
		Where("status = ? AND expiry_time >= ?", entities.FoodStatusAvailable, now.UTC()).
		Order("created_at DESC").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) GetClaimableFoods(ctx context.Context, now time.Time) ([]*entities.Food, error) {
	var foods []*entities.Food
	if err := r.db.WithContext(ctx).
		Preload("Restaurant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Where("status = ? AND expiry_time > ? AND donate_ready = ?", entities.FoodStatusAvailable, now.UTC(), true).
		Order("expiry_time ASC").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepository) ExpireStaleFoods(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Food{}).
		Where("status = ? AND expiry_time < ?", entities.FoodStatusAvailable, now.UTC()).
		Update("status", entities.FoodStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *foodRepository) DeleteFoodsByStatus(ctx context.Context, status string) (int64, error) {
	return r.deleteFoods(ctx, "status = ?", status)
}

func (r *foodRepository) DeleteStaleAvailableFoods(ctx context.Context, now time.Time) (int64, error) {
	return r.deleteFoods(ctx, "status = ? AND expiry_time < ?", entities.FoodStatusAvailable, now.UTC())
}

// deleteFoods removes the matching postings together with their claims in a
// single transaction.
func (r *foodRepository) deleteFoods(ctx context.Context, query string, args ...any) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postings := tx.Model(&entities.Food{}).Select("id").Where(query, args...)
		if err := tx.Where("food_id IN (?)", postings).Delete(&entities.Claim{}).Error; err != nil {
			return err
		}

		result := tx.Where(query, args...).Delete(&entities.Food{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
