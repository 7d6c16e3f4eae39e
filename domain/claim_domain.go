package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRequestClaim      = "claim requested"
	MessageSuccessGetClaims         = "claims retrieved successfully"
	MessageSuccessUpdateClaimStatus = "claim updated"
	MessageSuccessGetClaimableFoods = "claimable foods retrieved successfully"

	MessageFailedRequestClaim      = "error claiming food"
	MessageFailedGetClaims         = "error fetching claims"
	MessageFailedUpdateClaimStatus = "error updating claim"
	MessageFailedGetClaimableFoods = "error fetching food"

	ErrFoodNotClaimable      = errors.New("food not available for claim")
	ErrClaimAlreadyRequested = errors.New("already requested this food")
	ErrClaimNotFound         = errors.New("claim not found")
	ErrInvalidClaimStatus    = errors.New("invalid status")
)

type (
	RequestClaimRequest struct {
		FoodID string `json:"foodId" validate:"required,uuid"`
	}

	UpdateClaimStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	ClaimResponse struct {
		ID        string        `json:"id"`
		FoodID    string        `json:"food_id"`
		UserID    string        `json:"user_id"`
		Status    string        `json:"status"`
		ClaimedAt time.Time     `json:"claimed_at"`
		Food      *FoodResponse `json:"food,omitempty"`
	}
)
