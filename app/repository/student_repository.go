package repository

import (
	"github.com/CampusLinkHQ/CampusLink/app/models"
	"gorm.io/gorm"
)

// studentRepository implements AccountRepository over the student store
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student account repository instance
func NewStudentRepository(db *gorm.DB) AccountRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Role() models.Role {
	return models.RoleStudent
}

// Create creates a new student record in the database
func (r *studentRepository) Create(acc models.Account) error {
	return r.db.Create(acc).Error
}

// GetByID retrieves a student by ID
func (r *studentRepository) GetByID(id uint) (models.Account, error) {
	var student models.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByEmail retrieves a student by email address
func (r *studentRepository) GetByEmail(email string) (models.Account, error) {
	var student models.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByGoogleID retrieves a student by bound Google subject id
func (r *studentRepository) GetByGoogleID(sub string) (models.Account, error) {
	var student models.Student
	err := r.db.Where("google_id = ?", sub).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Update persists the whole student record
func (r *studentRepository) Update(acc models.Account) error {
	return r.db.Save(acc).Error
}

// studentDirectoryRepository serves the public directory lookup
type studentDirectoryRepository struct {
	db *gorm.DB
}

// NewStudentDirectoryRepository creates a new directory repository instance
func NewStudentDirectoryRepository(db *gorm.DB) StudentDirectoryRepository {
	return &studentDirectoryRepository{db: db}
}

func (r *studentDirectoryRepository) GetByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentDirectoryRepository) GetByRollNumber(rollNumber string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("roll_number = ?", rollNumber).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
