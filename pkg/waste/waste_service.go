package waste

import (
	"context"
	"errors"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/utils/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	WasteService interface {
		MarkWaste(ctx context.Context, req domain.MarkWasteRequest, restaurantID string) (domain.WasteResponse, error)
		GetAvailableWaste(ctx context.Context) ([]domain.WasteResponse, error)
		RequestCollection(ctx context.Context, req domain.RequestCollectionRequest, recyclerID string) (domain.RecyclerRequestResponse, error)
		GetMyRequests(ctx context.Context, recyclerID string) ([]domain.RecyclerRequestResponse, error)
	}

	wasteService struct {
		wasteRepository WasteRepository
		cache           *cache.Store
		logger          *zap.Logger
	}
)

func NewWasteService(wasteRepository WasteRepository, store *cache.Store, logger *zap.Logger) WasteService {
	return &wasteService{
		wasteRepository: wasteRepository,
		cache:           store,
		logger:          logger,
	}
}

func (s *wasteService) MarkWaste(ctx context.Context, req domain.MarkWasteRequest, restaurantID string) (domain.WasteResponse, error) {
	restaurantUUID, err := uuid.Parse(restaurantID)
	if err != nil {
		return domain.WasteResponse{}, domain.ErrParseUUID
	}

	waste := &entities.Waste{
		ID:           uuid.New(),
		RestaurantID: restaurantUUID,
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Status:       entities.WasteStatusPending,
	}
	if err := s.wasteRepository.CreateWaste(ctx, waste); err != nil {
		return domain.WasteResponse{}, err
	}

	s.cache.Invalidate(ctx, cache.KeyAvailableWaste)
	s.detectAnomaly(ctx, restaurantID)

	return ToWasteResponse(waste), nil
}

func (s *wasteService) GetAvailableWaste(ctx context.Context) ([]domain.WasteResponse, error) {
	return cache.Remember(ctx, s.cache, cache.KeyAvailableWaste, cache.TTLAvailableWaste, func(ctx context.Context) ([]domain.WasteResponse, error) {
		waste, err := s.wasteRepository.GetPendingWaste(ctx)
		if err != nil {
			return nil, err
		}
		return ToWasteResponses(waste), nil
	})
}

func (s *wasteService) RequestCollection(ctx context.Context, req domain.RequestCollectionRequest, recyclerID string) (domain.RecyclerRequestResponse, error) {
	recyclerUUID, err := uuid.Parse(recyclerID)
	if err != nil {
		return domain.RecyclerRequestResponse{}, domain.ErrParseUUID
	}
	wasteUUID, err := uuid.Parse(req.WasteID)
	if err != nil {
		return domain.RecyclerRequestResponse{}, domain.ErrParseUUID
	}

	waste, err := s.wasteRepository.GetWasteByID(ctx, req.WasteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecyclerRequestResponse{}, domain.ErrWasteNotFound
		}
		return domain.RecyclerRequestResponse{}, err
	}
	if waste.Status != entities.WasteStatusPending {
		return domain.RecyclerRequestResponse{}, domain.ErrWasteNotCollectable
	}

	request := &entities.RecyclerRequest{
		ID:         uuid.New(),
		WasteID:    wasteUUID,
		RecyclerID: recyclerUUID,
		Status:     entities.RecyclerRequestPending,
	}
	if err := s.wasteRepository.CreateRecyclerRequest(ctx, request); err != nil {
		return domain.RecyclerRequestResponse{}, err
	}

	s.cache.Invalidate(ctx, cache.KeyAvailableWaste)
	return ToRecyclerRequestResponse(request), nil
}

func (s *wasteService) GetMyRequests(ctx context.Context, recyclerID string) ([]domain.RecyclerRequestResponse, error) {
	if _, err := uuid.Parse(recyclerID); err != nil {
		return nil, domain.ErrParseUUID
	}

	requests, err := s.wasteRepository.GetRecyclerRequests(ctx, recyclerID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecyclerRequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, ToRecyclerRequestResponse(r))
	}
	return result, nil
}

// detectAnomaly warns when a restaurant accumulates more pending waste than
// recyclers are collecting.
func (s *wasteService) detectAnomaly(ctx context.Context, restaurantID string) {
	count, err := s.wasteRepository.CountPendingWasteByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Warn("waste anomaly check failed", zap.String("restaurant_id", restaurantID), zap.Error(err))
		return
	}
	if count > domain.WasteAnomalyThreshold {
		s.logger.Warn("high waste volume detected",
			zap.String("restaurant_id", restaurantID),
			zap.Int64("pending", count),
		)
	}
}
