package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClaimStatusPending  = "PENDING"
	ClaimStatusAccepted = "ACCEPTED"
	ClaimStatusRejected = "REJECTED"
)

type Claim struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FoodID    uuid.UUID `gorm:"type:uuid;index" json:"food_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Status    string    `gorm:"index;default:PENDING" json:"status"` // PENDING, ACCEPTED, REJECTED
	ClaimedAt time.Time `gorm:"index" json:"claimed_at"`

	Food *Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timestamp
}
