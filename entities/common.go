package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (f *Food) BeforeCreate(_ *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

func (c *Claim) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (w *Waste) BeforeCreate(_ *gorm.DB) error {
	ensureID(&w.ID)
	return nil
}

func (r *RecyclerRequest) BeforeCreate(_ *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
