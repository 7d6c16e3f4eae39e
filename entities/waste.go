package entities

import (
	"github.com/google/uuid"
)

const (
	WasteStatusPending = "PENDING"
	WasteStatusPicked  = "PICKED"

	RecyclerRequestPending  = "PENDING"
	RecyclerRequestAccepted = "ACCEPTED"
	RecyclerRequestRejected = "REJECTED"
)

type Waste struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index" json:"restaurant_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	Status       string    `gorm:"index;default:PENDING" json:"status"` // PENDING, PICKED

	Restaurant *User `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Timestamp
}

type RecyclerRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WasteID    uuid.UUID `gorm:"type:uuid;index" json:"waste_id"`
	RecyclerID uuid.UUID `gorm:"type:uuid;index" json:"recycler_id"`
	Status     string    `gorm:"default:PENDING" json:"status"`

	Waste    *Waste `gorm:"foreignKey:WasteID" json:"waste,omitempty"`
	Recycler *User  `gorm:"foreignKey:RecyclerID" json:"-"`
	Timestamp
}
