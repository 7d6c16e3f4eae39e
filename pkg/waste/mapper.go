package waste

import (
	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
)

func ToWasteResponse(w *entities.Waste) domain.WasteResponse {
	resp := domain.WasteResponse{
		ID:           w.ID.String(),
		Name:         w.Name,
		Category:     w.Category,
		Quantity:     w.Quantity,
		Unit:         w.Unit,
		Status:       w.Status,
		RestaurantID: w.RestaurantID.String(),
		CreatedAt:    w.CreatedAt,
	}
	if w.Restaurant != nil {
		resp.Restaurant = &domain.ContactResponse{
			ID:    w.Restaurant.ID.String(),
			Name:  w.Restaurant.Name,
			Email: w.Restaurant.Email,
			City:  w.Restaurant.City,
		}
	}
	return resp
}

func ToWasteResponses(waste []*entities.Waste) []domain.WasteResponse {
	result := make([]domain.WasteResponse, 0, len(waste))
	for _, w := range waste {
		result = append(result, ToWasteResponse(w))
	}
	return result
}

func ToRecyclerRequestResponse(r *entities.RecyclerRequest) domain.RecyclerRequestResponse {
	resp := domain.RecyclerRequestResponse{
		ID:         r.ID.String(),
		WasteID:    r.WasteID.String(),
		RecyclerID: r.RecyclerID.String(),
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
	if r.Waste != nil {
		w := ToWasteResponse(r.Waste)
		resp.Waste = &w
	}
	return resp
}
