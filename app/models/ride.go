package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ride is a ride-share listing. CampusLink only stores and lists offers;
// matching riders to drivers happens between the parties.
type Ride struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"uniqueIndex;type:varchar(36)" json:"uuid"`
	OwnerID     uint           `gorm:"index" json:"ownerId"`
	OwnerRole   Role           `gorm:"type:varchar(20)" json:"ownerRole"`
	OwnerName   string         `gorm:"type:varchar(150)" json:"ownerName"`
	Origin      string         `gorm:"type:varchar(200)" json:"origin" validate:"required,max=200"`
	Destination string         `gorm:"type:varchar(200)" json:"destination" validate:"required,max=200"`
	DepartAt    time.Time      `json:"departAt" validate:"required"`
	Seats       int            `gorm:"default:1" json:"seats" validate:"min=1,max=8"`
	Notes       string         `gorm:"type:text" json:"notes" validate:"max=500"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the public identifier.
func (r *Ride) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return nil
}

func (r *Ride) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
