package repository

import (
	"time"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"gorm.io/gorm"
)

// rideRepository implements the RideRepository interface
type rideRepository struct {
	db *gorm.DB
}

// NewRideRepository creates a new ride repository instance
func NewRideRepository(db *gorm.DB) RideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ride *models.Ride) error {
	return r.db.Create(ride).Error
}

func (r *rideRepository) GetByUUID(uuid string) (*models.Ride, error) {
	var ride models.Ride
	err := r.db.Where("uuid = ?", uuid).First(&ride).Error
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// ListUpcoming returns rides departing after the given time, soonest first.
func (r *rideRepository) ListUpcoming(after time.Time, limit int) ([]models.Ride, error) {
	var rides []models.Ride
	err := r.db.Where("depart_at > ?", after).Order("depart_at ASC").Limit(limit).Find(&rides).Error
	return rides, err
}

// Delete soft deletes a ride by ID
func (r *rideRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ride{}, id).Error
}
