package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	FoodStatusAvailable = "AVAILABLE"
	FoodStatusDonated   = "DONATED"
	FoodStatusExpired   = "EXPIRED"
)

type Food struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Quantity     int       `json:"quantity"`
	Status       string    `gorm:"index;default:AVAILABLE" json:"status"` // AVAILABLE, DONATED, EXPIRED
	Category     string    `gorm:"index" json:"category,omitempty"`
	City         string    `gorm:"index" json:"city,omitempty"`
	Location     *string   `json:"location,omitempty"`
	ExpiryTime   time.Time `gorm:"index" json:"expiry_time"`
	ImageURL     string    `json:"image_url,omitempty"`
	DonateReady  bool      `json:"donate_ready"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index" json:"restaurant_id"`

	Restaurant *User `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Timestamp
}
