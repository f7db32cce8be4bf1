package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Admin job titles. JobTitle is a descriptive title, NOT the platform role;
// there deliberately is no role column on this table. It is optional so admin
// accounts can be created on first sign-in and filled in later.
var AdminJobTitles = []string{
	"Office Assistant",
	"Librarian",
	"System Administrator",
	"Finance Officer",
	"Hostel Warden",
	"Maintenance Staff",
	"Placement Officer",
}

type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"type:varchar(150)" json:"fullName" validate:"required,min=1,max=150"`
	Email     string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,max=200"`
	Phone     string         `gorm:"type:varchar(30);default:''" json:"phone" validate:"max=30"`
	JobTitle  string         `gorm:"type:varchar(50);default:''" json:"jobTitle" validate:"omitempty,oneof='Office Assistant' 'Librarian' 'System Administrator' 'Finance Officer' 'Hostel Warden' 'Maintenance Staff' 'Placement Officer'"`
	Bio       string         `gorm:"type:text" json:"bio" validate:"max=1000"`
	AvatarURL string         `gorm:"type:text" json:"avatarUrl"`
	GoogleID  *string        `gorm:"uniqueIndex;type:varchar(191)" json:"-"`
	Password  string         `gorm:"type:text" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Admin) AccountID() uint      { return a.ID }
func (a *Admin) AccountEmail() string { return a.Email }
func (a *Admin) AccountName() string  { return a.FullName }

func (a *Admin) GoogleSubject() string {
	if a.GoogleID == nil {
		return ""
	}
	return *a.GoogleID
}

func (a *Admin) BindGoogleSubject(sub string) { a.GoogleID = &sub }

func (a *Admin) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
