package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/metrics"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/pkg/claim"
	"Food-Rescue-Backend/pkg/food"
	"Food-Rescue-Backend/pkg/user"
	"Food-Rescue-Backend/pkg/waste"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	recentActivityLimit = 10
	weeklyWindow        = 7 * 24 * time.Hour
)

// rankingEpoch is the default lower bound of the top-donor window.
var rankingEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type (
	AdminService interface {
		GetDashboardStats(ctx context.Context) (domain.DashboardStats, error)
		GetTopDonors(ctx context.Context, req domain.TopDonorsRequest) (domain.TopDonorsResponse, error)
		GetTopUsers(ctx context.Context, limit int) ([]domain.TopUser, error)
		GetWeeklyDonations(ctx context.Context, r domain.DateRange) ([]domain.DailyCount, error)
		GetMonthlyStats(ctx context.Context) ([]domain.MonthlyCount, error)
		GetLocationStats(ctx context.Context, req domain.LocationStatsRequest) ([]domain.LocationCount, error)
		GetRecentActivities(ctx context.Context) (domain.RecentActivities, error)

		GetDashboardConfig(ctx context.Context) domain.DashboardConfig
		UpdateDashboardConfig(ctx context.Context, req domain.UpdateDashboardConfigRequest) (domain.DashboardConfig, error)
	}

	adminService struct {
		adminRepository AdminRepository
		userRepository  user.UserRepository
		cache           *cache.Store
		widgets         *WidgetConfig
		clock           clockwork.Clock
		location        *time.Location
		logger          *zap.Logger
	}
)

func NewAdminService(
	adminRepository AdminRepository,
	userRepository user.UserRepository,
	store *cache.Store,
	widgets *WidgetConfig,
	clock clockwork.Clock,
	location *time.Location,
	logger *zap.Logger,
) AdminService {
	if location == nil {
		location = time.UTC
	}
	return &adminService{
		adminRepository: adminRepository,
		userRepository:  userRepository,
		cache:           store,
		widgets:         widgets,
		clock:           clock,
		location:        location,
		logger:          logger,
	}
}

func (s *adminService) fail(op string, err error) error {
	metrics.AggregationErrorsTotal.WithLabelValues(op).Inc()
	s.logger.Error("aggregation failed", zap.String("operation", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", domain.ErrAggregationFailed, op, err)
}

func (s *adminService) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	return cache.Remember(ctx, s.cache, cache.KeyAdminDashboard, cache.TTLAdminDashboard, s.computeDashboardStats)
}

func (s *adminService) computeDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	counts := []struct {
		dst   *int64
		count func(ctx context.Context) (int64, error)
	}{
		{&stats.TotalUsers, func(ctx context.Context) (int64, error) { return s.adminRepository.CountUsers(ctx, "") }},
		{&stats.UserRoles.NormalUserCount, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountUsers(ctx, entities.RoleUser)
		}},
		{&stats.UserRoles.NGOCount, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountUsers(ctx, entities.RoleNGO)
		}},
		{&stats.UserRoles.RestaurantCount, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountUsers(ctx, entities.RoleRestaurant)
		}},
		{&stats.UserRoles.RecyclerCount, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountUsers(ctx, entities.RoleRecycler)
		}},
		{&stats.FoodStats.TotalDonations, func(ctx context.Context) (int64, error) { return s.adminRepository.CountFoods(ctx, "") }},
		{&stats.FoodStats.AvailableDonations, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountFoods(ctx, entities.FoodStatusAvailable)
		}},
		{&stats.Claims.TotalClaims, func(ctx context.Context) (int64, error) { return s.adminRepository.CountClaims(ctx, "") }},
		{&stats.Claims.ClaimedCount, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountClaims(ctx, entities.ClaimStatusAccepted)
		}},
		{&stats.WasteStats.TotalWaste, func(ctx context.Context) (int64, error) { return s.adminRepository.CountWaste(ctx, "") }},
		{&stats.WasteStats.CollectedWaste, func(ctx context.Context) (int64, error) {
			return s.adminRepository.CountWaste(ctx, entities.WasteStatusPicked)
		}},
		{&stats.RecyclerRequests, s.adminRepository.CountRecyclerRequests},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		c := c
		g.Go(func() error {
			n, err := c.count(gctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, s.fail("dashboard", err)
	}

	return stats, nil
}

func (s *adminService) GetTopDonors(ctx context.Context, req domain.TopDonorsRequest) (domain.TopDonorsResponse, error) {
	limit := topLimit(req.Limit)
	window := req.Range
	if window.Start.IsZero() {
		window.Start = rankingEpoch
	}
	if window.End.IsZero() {
		window.End = s.clock.Now()
	}

	totals, err := s.adminRepository.GetDonationTotals(ctx, window)
	if err != nil {
		return domain.TopDonorsResponse{}, s.fail("top_donors", err)
	}

	groups, err := s.adminRepository.GetTopDonorGroups(ctx, window, limit*2)
	if err != nil {
		return domain.TopDonorsResponse{}, s.fail("top_donors", err)
	}

	denominator := float64(totals.TotalQuantity)
	if denominator == 0 {
		denominator = 1
	}

	// Donors are resolved one at a time in rank order so the result stays
	// deterministic; groups whose donor no longer resolves are skipped.
	donors := make([]domain.TopDonor, 0, min(limit, len(groups)))
	for _, group := range groups {
		if len(donors) == limit {
			break
		}

		donor, err := s.userRepository.GetUserByID(ctx, group.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return domain.TopDonorsResponse{}, s.fail("top_donors", err)
		}

		donors = append(donors, domain.TopDonor{
			Name:       donor.Name,
			Role:       donor.Role,
			Quantity:   group.TotalQuantity,
			Count:      group.PostingCount,
			Percentage: fmt.Sprintf("%.2f%%", float64(group.TotalQuantity)/denominator*100),
		})
	}

	return domain.TopDonorsResponse{
		TotalDonations: totals.TotalCount,
		TotalQuantity:  totals.TotalQuantity,
		TopDonors:      donors,
	}, nil
}

func (s *adminService) GetTopUsers(ctx context.Context, limit int) ([]domain.TopUser, error) {
	limit = topLimit(limit)

	groups, err := s.adminRepository.GetTopPosterGroups(ctx, limit)
	if err != nil {
		return nil, s.fail("top_users", err)
	}

	users := make([]domain.TopUser, 0, len(groups))
	for _, group := range groups {
		u, err := s.userRepository.GetUserByID(ctx, group.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, s.fail("top_users", err)
		}
		users = append(users, domain.TopUser{
			ID:        u.ID.String(),
			Name:      u.Name,
			Email:     u.Email,
			Donations: group.PostingCount,
		})
	}
	return users, nil
}

// topLimit applies the default ranking size and caps it at MaxTopLimit.
func topLimit(limit int) int {
	if limit <= 0 {
		return domain.DefaultTopLimit
	}
	return min(limit, domain.MaxTopLimit)
}

func (s *adminService) GetWeeklyDonations(ctx context.Context, r domain.DateRange) ([]domain.DailyCount, error) {
	now := s.clock.Now()
	if r.End.IsZero() {
		r.End = now
	}
	if r.Start.IsZero() {
		r.Start = now.Add(-weeklyWindow)
	}

	times, err := s.adminRepository.GetFoodCreationTimes(ctx, &r)
	if err != nil {
		return nil, s.fail("weekly_donations", err)
	}

	buckets := s.bucket(times, "2006-01-02")
	result := make([]domain.DailyCount, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, domain.DailyCount{Date: b.key, Count: b.count})
	}
	return result, nil
}

func (s *adminService) GetMonthlyStats(ctx context.Context) ([]domain.MonthlyCount, error) {
	times, err := s.adminRepository.GetFoodCreationTimes(ctx, nil)
	if err != nil {
		return nil, s.fail("monthly_stats", err)
	}

	buckets := s.bucket(times, "2006-01")
	result := make([]domain.MonthlyCount, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, domain.MonthlyCount{Month: b.key, Count: b.count})
	}
	return result, nil
}

type bucketCount struct {
	key   string
	count int64
}

// bucket groups timestamps by their layout-formatted value in the stats
// location. Buckets come back in ascending order and empty ones are absent.
func (s *adminService) bucket(times []time.Time, layout string) []bucketCount {
	counts := make(map[string]int64)
	for _, t := range times {
		counts[t.In(s.location).Format(layout)]++
	}

	result := make([]bucketCount, 0, len(counts))
	for key, count := range counts {
		result = append(result, bucketCount{key: key, count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].key < result[j].key })
	return result
}

func (s *adminService) GetLocationStats(ctx context.Context, req domain.LocationStatsRequest) ([]domain.LocationCount, error) {
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))

	locations, err := s.adminRepository.GetFoodLocations(ctx, req)
	if err != nil {
		return nil, s.fail("location_stats", err)
	}

	index := make(map[string]int)
	result := make([]domain.LocationCount, 0)
	for _, loc := range locations {
		if !loc.Valid || loc.String == "" {
			continue
		}
		i, ok := index[loc.String]
		if !ok {
			i = len(result)
			index[loc.String] = i
			result = append(result, domain.LocationCount{Location: loc.String})
		}
		result[i].Count++
	}
	return result, nil
}

func (s *adminService) GetRecentActivities(ctx context.Context) (domain.RecentActivities, error) {
	var activities domain.RecentActivities

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		foods, err := s.adminRepository.GetRecentFoods(gctx, recentActivityLimit)
		if err != nil {
			return err
		}
		activities.RecentDonations = food.ToFoodResponses(foods)
		return nil
	})
	g.Go(func() error {
		claims, err := s.adminRepository.GetRecentClaims(gctx, recentActivityLimit)
		if err != nil {
			return err
		}
		activities.RecentClaims = claim.ToClaimResponses(claims)
		return nil
	})
	g.Go(func() error {
		wastes, err := s.adminRepository.GetRecentWaste(gctx, recentActivityLimit)
		if err != nil {
			return err
		}
		activities.RecentWaste = waste.ToWasteResponses(wastes)
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.RecentActivities{}, s.fail("recent_activities", err)
	}

	return activities, nil
}

func (s *adminService) GetDashboardConfig(_ context.Context) domain.DashboardConfig {
	return s.widgets.Snapshot()
}

func (s *adminService) UpdateDashboardConfig(_ context.Context, req domain.UpdateDashboardConfigRequest) (domain.DashboardConfig, error) {
	return s.widgets.Update(strings.TrimSpace(req.Add), strings.TrimSpace(req.Remove))
}
