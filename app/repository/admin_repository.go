package repository

import (
	"github.com/CampusLinkHQ/CampusLink/app/models"
	"gorm.io/gorm"
)

// adminRepository implements AccountRepository over the admin store
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin account repository instance
func NewAdminRepository(db *gorm.DB) AccountRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Role() models.Role {
	return models.RoleAdmin
}

func (r *adminRepository) Create(acc models.Account) error {
	return r.db.Create(acc).Error
}

func (r *adminRepository) GetByID(id uint) (models.Account, error) {
	var admin models.Admin
	err := r.db.First(&admin, id).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(email string) (models.Account, error) {
	var admin models.Admin
	err := r.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByGoogleID(sub string) (models.Account, error) {
	var admin models.Admin
	err := r.db.Where("google_id = ?", sub).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Update(acc models.Account) error {
	return r.db.Save(acc).Error
}
