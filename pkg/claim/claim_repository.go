package claim

import (
	"context"

	"Food-Rescue-Backend/entities"

	"gorm.io/gorm"
)

type (
	ClaimRepository interface {
		CreateClaim(ctx context.Context, claim *entities.Claim) error
		GetClaimByID(ctx context.Context, id string) (*entities.Claim, error)
		GetClaimByFoodAndUser(ctx context.Context, foodID string, userID string) (*entities.Claim, error)
		GetClaimsByUser(ctx context.Context, userID string) ([]*entities.Claim, error)
		UpdateClaimStatus(ctx context.Context, id string, status string) error
		AcceptClaim(ctx context.Context, id string, foodID string) error
	}

	claimRepository struct {
		db *gorm.DB
	}
)

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) CreateClaim(ctx context.Context, claim *entities.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *claimRepository) GetClaimByID(ctx context.Context, id string) (*entities.Claim, error) {
	var claim entities.Claim
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Food").
		Where("id = ?", id).
		First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) GetClaimByFoodAndUser(ctx context.Context, foodID string, userID string) (*entities.Claim, error) {
	var claim entities.Claim
	if err := r.db.WithContext(ctx).
		Where("food_id = ? AND user_id = ?", foodID, userID).
		First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) GetClaimsByUser(ctx context.Context, userID string) ([]*entities.Claim, error) {
	var claims []*entities.Claim
	if err := r.db.WithContext(ctx).
		Preload("Food").
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *claimRepository) UpdateClaimStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Claim{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// AcceptClaim marks the claim ACCEPTED and, in the same transaction, moves
// the claimed posting from AVAILABLE to DONATED. A posting that already left
// AVAILABLE keeps its status.
func (r *claimRepository) AcceptClaim(ctx context.Context, id string, foodID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Claim{}).
			Where("id = ?", id).
			Update("status", entities.ClaimStatusAccepted).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Food{}).
			Where("id = ? AND status = ?", foodID, entities.FoodStatusAvailable).
			Update("status", entities.FoodStatusDonated).Error
	})
}
