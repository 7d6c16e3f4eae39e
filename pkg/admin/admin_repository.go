package admin

import (
	"context"
	"database/sql"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"

	"gorm.io/gorm"
)

type (
	// DonorGroup is one row of a group-by over food postings keyed by donor.
	DonorGroup struct {
		RestaurantID  string
		TotalQuantity int64
		PostingCount  int64
	}

	DonationTotals struct {
		TotalQuantity int64
		TotalCount    int64
	}

	AdminRepository interface {
		CountUsers(ctx context.Context, role string) (int64, error)
		CountFoods(ctx context.Context, status string) (int64, error)
		CountClaims(ctx context.Context, status string) (int64, error)
		CountWaste(ctx context.Context, status string) (int64, error)
		CountRecyclerRequests(ctx context.Context) (int64, error)

		GetDonationTotals(ctx context.Context, r domain.DateRange) (DonationTotals, error)
		GetTopDonorGroups(ctx context.Context, r domain.DateRange, limit int) ([]DonorGroup, error)
		GetTopPosterGroups(ctx context.Context, limit int) ([]DonorGroup, error)

		GetFoodCreationTimes(ctx context.Context, r *domain.DateRange) ([]time.Time, error)
		GetFoodLocations(ctx context.Context, req domain.LocationStatsRequest) ([]sql.NullString, error)

		GetRecentFoods(ctx context.Context, limit int) ([]*entities.Food, error)
		GetRecentClaims(ctx context.Context, limit int) ([]*entities.Claim, error)
		GetRecentWaste(ctx context.Context, limit int) ([]*entities.Waste, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// count counts rows of model, optionally restricted to column = value.
func (r *adminRepository) count(ctx context.Context, model any, column, value string) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(model)
	if value != "" {
		query = query.Where(column+" = ?", value)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountUsers includes soft-deleted users.
func (r *adminRepository) CountUsers(ctx context.Context, role string) (int64, error) {
	return r.count(ctx, &entities.User{}, "role", role)
}

func (r *adminRepository) CountFoods(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &entities.Food{}, "status", status)
}

func (r *adminRepository) CountClaims(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &entities.Claim{}, "status", status)
}

func (r *adminRepository) CountWaste(ctx context.Context, status string) (int64, error) {
	return r.count(ctx, &entities.Waste{}, "status", status)
}

func (r *adminRepository) CountRecyclerRequests(ctx context.Context) (int64, error) {
	return r.count(ctx, &entities.RecyclerRequest{}, "", "")
}

func (r *adminRepository) donatedInRange(ctx context.Context, dr domain.DateRange) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Food{}).
		Where("status = ? AND created_at >= ? AND created_at <= ?", entities.FoodStatusDonated, dr.Start.UTC(), dr.End.UTC())
}

func (r *adminRepository) GetDonationTotals(ctx context.Context, dr domain.DateRange) (DonationTotals, error) {
	var totals DonationTotals
	err := r.donatedInRange(ctx, dr).
		Select("COALESCE(SUM(quantity), 0) AS total_quantity, COUNT(*) AS total_count").
		Scan(&totals).Error
	return totals, err
}

func (r *adminRepository) GetTopDonorGroups(ctx context.Context, dr domain.DateRange, limit int) ([]DonorGroup, error) {
	var groups []DonorGroup
	err := r.donatedInRange(ctx, dr).
		Select("restaurant_id, COALESCE(SUM(quantity), 0) AS total_quantity, COUNT(*) AS posting_count").
		Group("restaurant_id").
		Order("total_quantity DESC").
		Order("restaurant_id ASC").
		Limit(limit).
		Scan(&groups).Error
	return groups, err
}

func (r *adminRepository) GetTopPosterGroups(ctx context.Context, limit int) ([]DonorGroup, error) {
	var groups []DonorGroup
	err := r.db.WithContext(ctx).
		Model(&entities.Food{}).
		Select("restaurant_id, COALESCE(SUM(quantity), 0) AS total_quantity, COUNT(*) AS posting_count").
		Group("restaurant_id").
		Order("posting_count DESC").
		Order("restaurant_id ASC").
		Limit(limit).
		Scan(&groups).Error
	return groups, err
}

func (r *adminRepository) GetFoodCreationTimes(ctx context.Context, dr *domain.DateRange) ([]time.Time, error) {
	var times []time.Time
	query := r.db.WithContext(ctx).Model(&entities.Food{})
	if dr != nil {
		query = query.Where("created_at >= ? AND created_at <= ?", dr.Start.UTC(), dr.End.UTC())
	}
	if err := query.Order("created_at ASC").Pluck("created_at", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *adminRepository) GetFoodLocations(ctx context.Context, req domain.LocationStatsRequest) ([]sql.NullString, error) {
	var locations []sql.NullString
	query := r.db.WithContext(ctx).Model(&entities.Food{})
	if req.Start != nil {
		query = query.Where("created_at >= ?", req.Start.UTC())
	}
	if req.End != nil {
		query = query.Where("created_at <= ?", req.End.UTC())
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if err := query.Order("created_at ASC").Order("id ASC").Pluck("location", &locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *adminRepository) GetRecentFoods(ctx context.Context, limit int) ([]*entities.Food, error) {
	var foods []*entities.Food
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *adminRepository) GetRecentClaims(ctx context.Context, limit int) ([]*entities.Claim, error) {
	var claims []*entities.Claim
	if err := r.db.WithContext(ctx).Order("claimed_at DESC").Limit(limit).Find(&claims).Error; err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *adminRepository) GetRecentWaste(ctx context.Context, limit int) ([]*entities.Waste, error) {
	var waste []*entities.Waste
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&waste).Error; err != nil {
		return nil, err
	}
	return waste, nil
}
