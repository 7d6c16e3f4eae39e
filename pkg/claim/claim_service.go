package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/internal/utils/mailing"
	"Food-Rescue-Backend/pkg/food"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// statusAliases maps accepted input spellings to stored claim statuses.
var statusAliases = map[string]string{
	"APPROVED":                   entities.ClaimStatusAccepted,
	entities.ClaimStatusAccepted: entities.ClaimStatusAccepted,
	entities.ClaimStatusRejected: entities.ClaimStatusRejected,
}

type (
	ClaimService interface {
		GetClaimableFoods(ctx context.Context) ([]domain.FoodResponse, error)
		RequestClaim(ctx context.Context, req domain.RequestClaimRequest, userID string) (domain.ClaimResponse, error)
		GetMyClaims(ctx context.Context, userID string) ([]domain.ClaimResponse, error)
		UpdateClaimStatus(ctx context.Context, claimID string, req domain.UpdateClaimStatusRequest) (domain.ClaimResponse, error)
	}

	claimService struct {
		claimRepository ClaimRepository
		foodRepository  food.FoodRepository
		mailer          mailing.Mailer
		cache           *cache.Store
		clock           clockwork.Clock
		logger          *zap.Logger
	}
)

func NewClaimService(
	claimRepository ClaimRepository,
	foodRepository food.FoodRepository,
	mailer mailing.Mailer,
	store *cache.Store,
	clock clockwork.Clock,
	logger *zap.Logger,
) ClaimService {
	return &claimService{
		claimRepository: claimRepository,
		foodRepository:  foodRepository,
		mailer:          mailer,
		cache:           store,
		clock:           clock,
		logger:          logger,
	}
}

func (s *claimService) GetClaimableFoods(ctx context.Context) ([]domain.FoodResponse, error) {
	foods, err := s.foodRepository.GetClaimableFoods(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return food.ToFoodResponses(foods), nil
}

func (s *claimService) RequestClaim(ctx context.Context, req domain.RequestClaimRequest, userID string) (domain.ClaimResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ClaimResponse{}, domain.ErrParseUUID
	}
	foodUUID, err := uuid.Parse(req.FoodID)
	if err != nil {
		return domain.ClaimResponse{}, domain.ErrParseUUID
	}

	posting, err := s.foodRepository.GetFoodByID(ctx, req.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClaimResponse{}, domain.ErrFoodNotClaimable
		}
		return domain.ClaimResponse{}, err
	}
	if posting.Status != entities.FoodStatusAvailable || !posting.DonateReady {
		return domain.ClaimResponse{}, domain.ErrFoodNotClaimable
	}

	_, err = s.claimRepository.GetClaimByFoodAndUser(ctx, req.FoodID, userID)
	switch {
	case err == nil:
		return domain.ClaimResponse{}, domain.ErrClaimAlreadyRequested
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ClaimResponse{}, err
	}

	claim := &entities.Claim{
		ID:        uuid.New(),
		FoodID:    foodUUID,
		UserID:    userUUID,
		Status:    entities.ClaimStatusPending,
		ClaimedAt: s.clock.Now().UTC(),
	}
	if err := s.claimRepository.CreateClaim(ctx, claim); err != nil {
		// a concurrent request for the same posting won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ClaimResponse{}, domain.ErrClaimAlreadyRequested
		}
		return domain.ClaimResponse{}, err
	}

	s.cache.Invalidate(ctx, cache.KeyMyClaims(userID))
	return ToClaimResponse(claim), nil
}

func (s *claimService) GetMyClaims(ctx context.Context, userID string) ([]domain.ClaimResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	return cache.Remember(ctx, s.cache, cache.KeyMyClaims(userID), cache.TTLMyClaims, func(ctx context.Context) ([]domain.ClaimResponse, error) {
		claims, err := s.claimRepository.GetClaimsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return ToClaimResponses(claims), nil
	})
}

func (s *claimService) UpdateClaimStatus(ctx context.Context, claimID string, req domain.UpdateClaimStatusRequest) (domain.ClaimResponse, error) {
	status, ok := statusAliases[strings.ToUpper(req.Status)]
	if !ok {
		return domain.ClaimResponse{}, domain.ErrInvalidClaimStatus
	}
	if _, err := uuid.Parse(claimID); err != nil {
		return domain.ClaimResponse{}, domain.ErrParseUUID
	}

	claim, err := s.claimRepository.GetClaimByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClaimResponse{}, domain.ErrClaimNotFound
		}
		return domain.ClaimResponse{}, err
	}

	if status == entities.ClaimStatusAccepted {
		err = s.claimRepository.AcceptClaim(ctx, claimID, claim.FoodID.String())
	} else {
		err = s.claimRepository.UpdateClaimStatus(ctx, claimID, status)
	}
	if err != nil {
		return domain.ClaimResponse{}, err
	}

	claim.Status = status
	if status == entities.ClaimStatusAccepted {
		s.cache.Invalidate(ctx, cache.KeyAvailableFoods)
	}
	s.cache.Invalidate(ctx, cache.KeyMyClaims(claim.UserID.String()))
	s.notifyClaimant(claim)

	resp := ToClaimResponse(claim)
	resp.Food = nil
	return resp, nil
}

func (s *claimService) notifyClaimant(claim *entities.Claim) {
	if s.mailer == nil || claim.User == nil || claim.User.Email == "" {
		return
	}

	title := "your request"
	if claim.Food != nil {
		title = claim.Food.Title
	}
	subject := fmt.Sprintf("Claim %s", strings.ToLower(claim.Status))
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your claim for <b>%s</b> is now %s.</p>", claim.User.Name, title, strings.ToLower(claim.Status))

	if err := s.mailer.SendMail(claim.User.Email, subject, body); err != nil {
		s.logger.Warn("failed to send claim notification",
			zap.String("claim_id", claim.ID.String()),
			zap.Error(err),
		)
	}
}
