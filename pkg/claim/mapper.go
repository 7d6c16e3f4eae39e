package claim

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/pkg/food"
)

func ToClaimResponse(c *entities.Claim) domain.ClaimResponse {
	resp := domain.ClaimResponse{
		ID:        c.ID.String(),
		FoodID:    c.FoodID.String(),
		UserID:    c.UserID.String(),
		Status:    c.Status,
		ClaimedAt: c.ClaimedAt,
	}
	if c.Food != nil {
		f := food.ToFoodResponse(c.Food)
		resp.Food = &f
	}
	return resp
}

func ToClaimResponses(claims []*entities.Claim) []domain.ClaimResponse {
	result := make([]domain.ClaimResponse, 0, len(claims))
	for _, c := range claims {
		result = append(result, ToClaimResponse(c))
	}
	return result
}
