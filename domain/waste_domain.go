package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessMarkWaste          = "waste marked"
	MessageSuccessGetAvailableWaste  = "waste items retrieved successfully"
	MessageSuccessRequestCollection  = "collection request sent"
	MessageSuccessGetRecyclerRequest = "recycler requests retrieved successfully"

	MessageFailedMarkWaste          = "error marking waste"
	MessageFailedGetAvailableWaste  = "error fetching waste items"
	MessageFailedRequestCollection  = "error sending request"
	MessageFailedGetRecyclerRequest = "error fetching requests"

	ErrWasteNotFound       = errors.New("waste not found")
	ErrWasteNotCollectable = errors.New("waste is not pending collection")
)

const (
	// WasteAnomalyThreshold is the number of pending waste records per
	// restaurant above which a warning is logged.
	WasteAnomalyThreshold = 10
)

type (
	MarkWasteRequest struct {
		Name     string  `json:"name" validate:"required"`
		Category string  `json:"category" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required"`
	}

	RequestCollectionRequest struct {
		WasteID string `json:"wasteId" validate:"required,uuid"`
	}

	WasteResponse struct {
		ID           string           `json:"id"`
		Name         string           `json:"name"`
		Category     string           `json:"category"`
		Quantity     float64          `json:"quantity"`
		Unit         string           `json:"unit"`
		Status       string           `json:"status"`
		RestaurantID string           `json:"restaurant_id"`
		Restaurant   *ContactResponse `json:"restaurant,omitempty"`
		CreatedAt    time.Time        `json:"created_at"`
	}

	RecyclerRequestResponse struct {
		ID         string         `json:"id"`
		WasteID    string         `json:"waste_id"`
		RecyclerID string         `json:"recycler_id"`
		Status     string         `json:"status"`
		Waste      *WasteResponse `json:"waste,omitempty"`
		CreatedAt  time.Time      `json:"created_at"`
	}
)
