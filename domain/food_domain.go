package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateFood        = "food posted successfully"
	MessageSuccessGetFoods          = "foods retrieved successfully"
	MessageSuccessGetAvailableFoods = "available foods retrieved successfully"

	MessageFailedCreateFood        = "error creating food post"
	MessageFailedGetFoods          = "server error"
	MessageFailedGetAvailableFoods = "failed to fetch food"

	ErrFoodNotFound      = errors.New("food not found")
	ErrInvalidExpiryTime = errors.New("invalid expiry time")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

type (
	CreateFoodRequest struct {
		Title       string                `json:"title" form:"title" validate:"required"`
		Description string                `json:"description" form:"description"`
		Quantity    int                   `json:"quantity" form:"quantity" validate:"required,min=1"`
		Category    string                `json:"category" form:"category"`
		City        string                `json:"city" form:"city"`
		Location    string                `json:"location" form:"location"`
		ExpiryTime  string                `json:"expiry_time" form:"expiry_time" validate:"required"`
		DonateReady bool                  `json:"donate_ready" form:"donate_ready"`
		Image       *multipart.FileHeader `json:"-" form:"-"`
	}

	FoodListRequest struct {
		Search   string
		Category string
		City     string
		Page     int
		Limit    int
		Sort     string
	}

	FoodListResponse struct {
		Count      int            `json:"count"`
		Total      int64          `json:"total"`
		Page       int            `json:"page"`
		TotalPages int64          `json:"total_pages"`
		Data       []FoodResponse `json:"data"`
	}

	FoodResponse struct {
		ID           string           `json:"id"`
		Title        string           `json:"title"`
		Description  string           `json:"description,omitempty"`
		Quantity     int              `json:"quantity"`
		Status       string           `json:"status,omitempty"`
		Category     string           `json:"category,omitempty"`
		City         string           `json:"city,omitempty"`
		Location     string           `json:"location,omitempty"`
		ImageURL     string           `json:"image_url,omitempty"`
		DonateReady  bool             `json:"donate_ready"`
		ExpiryTime   time.Time        `json:"expiry_time"`
		RestaurantID string           `json:"restaurant_id,omitempty"`
		Restaurant   *ContactResponse `json:"restaurant,omitempty"`
		CreatedAt    time.Time        `json:"created_at"`
	}

	ContactResponse struct {
		ID    string `json:"id,omitempty"`
		Name  string `json:"name"`
		Email string `json:"email"`
		City  string `json:"city,omitempty"`
	}
)
