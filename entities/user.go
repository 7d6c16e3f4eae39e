package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser       = "USER"
	RoleNGO        = "NGO"
	RoleRestaurant = "RESTAURANT"
	RoleRecycler   = "RECYCLER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `json:"name"`
	Email     string     `gorm:"uniqueIndex" json:"email"`
	Role      string     `gorm:"index;default:USER" json:"role"`
	City      string     `json:"city,omitempty"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Timestamp
}
