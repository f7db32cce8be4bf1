package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	GenderMale        = "Male"
	GenderFemale      = "Female"
	GenderOther       = "Other"
	GenderUnspecified = "Prefer not to say"
)

type Student struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	FullName       string         `gorm:"type:varchar(150)" json:"fullName" validate:"required,min=1,max=150"`
	RollNumber     *string        `gorm:"uniqueIndex;type:varchar(50)" json:"rollNumber,omitempty" validate:"omitempty,max=50"`
	Email          string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,max=200"`
	Phone          string         `gorm:"type:varchar(30);default:''" json:"phone" validate:"max=30"`
	Gender         string         `gorm:"type:varchar(30);default:'Prefer not to say'" json:"gender" validate:"omitempty,oneof='Male' 'Female' 'Other' 'Prefer not to say'"`
	Department     string         `gorm:"type:varchar(100);default:''" json:"department" validate:"max=100"`
	ProgramAndYear string         `gorm:"type:varchar(100);default:''" json:"programAndYear" validate:"max=100"`
	Bio            string         `gorm:"type:text" json:"bio" validate:"max=1000"`
	AvatarURL      string         `gorm:"type:text" json:"avatarUrl"`
	GoogleID       *string        `gorm:"uniqueIndex;type:varchar(191)" json:"-"`
	Password       string         `gorm:"type:text" json:"-"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Student) AccountID() uint      { return s.ID }
func (s *Student) AccountEmail() string { return s.Email }
func (s *Student) AccountName() string  { return s.FullName }

func (s *Student) GoogleSubject() string {
	if s.GoogleID == nil {
		return ""
	}
	return *s.GoogleID
}

func (s *Student) BindGoogleSubject(sub string) { s.GoogleID = &sub }

func (s *Student) Validate() error {
	v := validator.New()

	return v.Struct(s)
}
