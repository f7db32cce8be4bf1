package repository

import (
	"github.com/CampusLinkHQ/CampusLink/app/models"
	"gorm.io/gorm"
)

// facultyRepository implements AccountRepository over the faculty store
type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository creates a new faculty account repository instance
func NewFacultyRepository(db *gorm.DB) AccountRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) Role() models.Role {
	return models.RoleFaculty
}

func (r *facultyRepository) Create(acc models.Account) error {
	return r.db.Create(acc).Error
}

func (r *facultyRepository) GetByID(id uint) (models.Account, error) {
	var faculty models.Faculty
	err := r.db.First(&faculty, id).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepository) GetByEmail(email string) (models.Account, error) {
	var faculty models.Faculty
	err := r.db.Where("email = ?", email).First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepository) GetByGoogleID(sub string) (models.Account, error) {
	var faculty models.Faculty
	err := r.db.Where("google_id = ?", sub).First(&faculty).Error
	if err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *facultyRepository) Update(acc models.Account) error {
	return r.db.Save(acc).Error
}
