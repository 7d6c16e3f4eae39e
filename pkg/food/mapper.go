package food

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"

	"github.com/google/uuid"
)

func ToFoodResponse(f *entities.Food) domain.FoodResponse {
	resp := domain.FoodResponse{
		ID:          f.ID.String(),
		Title:       f.Title,
		Description: f.Description,
		Quantity:    f.Quantity,
		Status:      f.Status,
		Category:    f.Category,
		City:        f.City,
		ImageURL:    f.ImageURL,
		DonateReady: f.DonateReady,
		ExpiryTime:  f.ExpiryTime,
		CreatedAt:   f.CreatedAt,
	}
	if f.Location != nil {
		resp.Location = *f.Location
	}
	if f.RestaurantID != uuid.Nil {
		resp.RestaurantID = f.RestaurantID.String()
	}
	if f.Restaurant != nil {
		resp.Restaurant = &domain.ContactResponse{
			Name:  f.Restaurant.Name,
			Email: f.Restaurant.Email,
		}
	}
	return resp
}

func ToFoodResponses(foods []*entities.Food) []domain.FoodResponse {
	result := make([]domain.FoodResponse, 0, len(foods))
	for _, f := range foods {
		result = append(result, ToFoodResponse(f))
	}
	return result
}
