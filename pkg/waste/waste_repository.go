package waste

import (
	"context"

	"Food-Rescue-Backend/entities"

	"gorm.io/gorm"
)

type (
	WasteRepository interface {
		CreateWaste(ctx context.Context, waste *entities.Waste) error
		GetWasteByID(ctx context.Context, id string) (*entities.Waste, error)
		GetPendingWaste(ctx context.Context) ([]*entities.Waste, error)
		CountPendingWasteByRestaurant(ctx context.Context, restaurantID string) (int64, error)

		CreateRecyclerRequest(ctx context.Context, request *entities.RecyclerRequest) error
		GetRecyclerRequests(ctx context.Context, recyclerID string) ([]*entities.RecyclerRequest, error)
	}

	wasteRepository struct {
		db *gorm.DB
	}
)

func NewWasteRepository(db *gorm.DB) WasteRepository {
	return &wasteRepository{db: db}
}

func (r *wasteRepository) CreateWaste(ctx context.Context, waste *entities.Waste) error {
	return r.db.WithContext(ctx).Create(waste).Error
}

func (r *wasteRepository) GetWasteByID(ctx context.Context, id string) (*entities.Waste, error) {
	var waste entities.Waste
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&waste).Error; err != nil {
		return nil, err
	}
	return &waste, nil
}

func (r *wasteRepository) GetPendingWaste(ctx context.Context) ([]*entities.Waste, error) {
	var waste []*entities.Waste
	if err := r.db.WithContext(ctx).
		Preload("Restaurant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "city")
		}).
		Where("status = ?", entities.WasteStatusPending).
		Order("created_at DESC").
		Find(&waste).Error; err != nil {
		return nil, err
	}
	return waste, nil
}

func (r *wasteRepository) CountPendingWasteByRestaurant(ctx context.Context, restaurantID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Waste{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, entities.WasteStatusPending).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *wasteRepository) CreateRecyclerRequest(ctx context.Context, request *entities.RecyclerRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *wasteRepository) GetRecyclerRequests(ctx context.Context, recyclerID string) ([]*entities.RecyclerRequest, error) {
	var requests []*entities.RecyclerRequest
	if err := r.db.WithContext(ctx).
		Preload("Waste").
		Where("recycler_id = ?", recyclerID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
