package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Faculty departments offered on campus. Empty is allowed so accounts can be
// created on first sign-in and completed later.
const (
	DepartmentCSE = "CSE"
	DepartmentECE = "ECE"
)

type Faculty struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FullName   string         `gorm:"type:varchar(150)" json:"fullName" validate:"required,min=1,max=150"`
	Email      string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,max=200"`
	Phone      string         `gorm:"type:varchar(30);default:''" json:"phone" validate:"max=30"`
	Department string         `gorm:"type:varchar(20);default:''" json:"department" validate:"omitempty,oneof=CSE ECE"`
	Bio        string         `gorm:"type:text" json:"bio" validate:"max=1000"`
	AvatarURL  string         `gorm:"type:text" json:"avatarUrl"`
	GoogleID   *string        `gorm:"uniqueIndex;type:varchar(191)" json:"-"`
	Password   string         `gorm:"type:text" json:"-"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Faculty) AccountID() uint      { return f.ID }
func (f *Faculty) AccountEmail() string { return f.Email }
func (f *Faculty) AccountName() string  { return f.FullName }

func (f *Faculty) GoogleSubject() string {
	if f.GoogleID == nil {
		return ""
	}
	return *f.GoogleID
}

func (f *Faculty) BindGoogleSubject(sub string) { f.GoogleID = &sub }

func (f *Faculty) Validate() error {
	v := validator.New()

	return v.Struct(f)
}
