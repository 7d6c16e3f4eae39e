package food

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/internal/utils/storage"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxPage      = math.MaxInt32 / maxLimit
	defaultSort  = "-created_at"
	imageFolder  = "food-images"
)

var sortableFields = map[string]string{
	"title":       "title",
	"quantity":    "quantity",
	"category":    "category",
	"city":        "city",
	"status":      "status",
	"created_at":  "created_at",
	"createdAt":   "created_at",
	"expiry_time": "expiry_time",
	"expiryTime":  "expiry_time",
}

type (
	FoodService interface {
		CreateFood(ctx context.Context, req domain.CreateFoodRequest, restaurantID string) (domain.FoodResponse, error)
		GetAllFoods(ctx context.Context, req domain.FoodListRequest) (domain.FoodListResponse, error)
		GetAvailableFoods(ctx context.Context) ([]domain.FoodResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		cache          *cache.Store
		clock          clockwork.Clock
		logger         *zap.Logger
	}
)

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, store *cache.Store, clock clockwork.Clock, logger *zap.Logger) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		cache:          store,
		clock:          clock,
		logger:         logger,
	}
}

func (s *foodService) CreateFood(ctx context.Context, req domain.CreateFoodRequest, restaurantID string) (domain.FoodResponse, error) {
	restaurantUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return domain.FoodResponse{}, domain.ErrParseUUID
	}

	if req.Quantity <= 0 {
		return domain.FoodResponse{}, domain.ErrInvalidQuantity
	}

	expiry, err := parseExpiry(req.ExpiryTime)
	if err != nil {
		return domain.FoodResponse{}, domain.ErrInvalidExpiryTime
	}

	food := &entities.Food{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Status:       entities.FoodStatusAvailable,
		Category:     req.Category,
		City:         req.City,
		ExpiryTime:   expiry,
		DonateReady:  req.DonateReady,
		RestaurantID: restaurantUUID,
	}
	if req.Location != "" {
		location := req.Location
		food.Location = &location
	}

	if req.Image != nil && s.s3 != nil {
		key, err := s.s3.UploadFile(ctx, food.ID.String(), req.Image, imageFolder, storage.AllowImage...)
		if err != nil {
			return domain.FoodResponse{}, err
		}
		food.ImageURL = s.s3.GetPublicLinkKey(key)
	}

	if err := s.foodRepository.CreateFood(ctx, food); err != nil {
		if food.ImageURL != "" {
			s.removeImage(ctx, food.ID.String())
		}
		return domain.FoodResponse{}, err
	}

	s.cache.Invalidate(ctx, cache.KeyAvailableFoods)
	return ToFoodResponse(food), nil
}

func (s *foodService) GetAllFoods(ctx context.Context, req domain.FoodListRequest) (domain.FoodListResponse, error) {
	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	page = min(page, maxPage)
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	orders, err := parseSort(req.Sort)
	if err != nil {
		return domain.FoodListResponse{}, err
	}

	filter := FoodFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: req.Category,
		City:     req.City,
	}
	foods, total, err := s.foodRepository.GetFoods(ctx, filter, orders, (page-1)*limit, limit)
	if err != nil {
		return domain.FoodListResponse{}, err
	}

	return domain.FoodListResponse{
		Count:      len(foods),
		Total:      total,
		Page:       page,
		TotalPages: int64(math.Ceil(float64(total) / float64(limit))),
		Data:       ToFoodResponses(foods),
	}, nil
}

func (s *foodService) GetAvailableFoods(ctx context.Context) ([]domain.FoodResponse, error) {
	return cache.Remember(ctx, s.cache, cache.KeyAvailableFoods, cache.TTLAvailableFoods, func(ctx context.Context) ([]domain.FoodResponse, error) {
		foods, err := s.foodRepository.GetAvailableFoods(ctx, s.clock.Now())
		if err != nil {
			return nil, err
		}
		return ToFoodResponses(foods), nil
	})
}

func (s *foodService) removeImage(ctx context.Context, name string) {
	for _, ext := range storage.AllowImage {
		key := fmt.Sprintf("%s/%s%s", imageFolder, name, ext)
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			s.logger.Warn("failed to remove orphaned image", zap.String("key", key), zap.Error(err))
		}
	}
}

// parseSort turns "title,-created_at" into gorm order clauses.
func parseSort(sort string) ([]string, error) {
	if strings.TrimSpace(sort) == "" {
		sort = defaultSort
	}

	var orders []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		column, ok := sortableFields[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSortField, field)
		}
		orders = append(orders, column+" "+direction)
	}
	if len(orders) == 0 {
		return []string{"created_at DESC"}, nil
	}
	return orders, nil
}

func parseExpiry(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidExpiryTime
}
