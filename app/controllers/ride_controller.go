package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
)

const rideListLimit = 100

var rideRepo repository.RideRepository

// InitializeRideController wires the ride listing store.
func InitializeRideController() {
	rideRepo = repository.GetGlobalRepositories().Rides
}

type createRideRequest struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartAt    time.Time `json:"departAt"`
	Seats       int       `json:"seats"`
	Notes       string    `json:"notes"`
}

// HandleCreateRide publishes a ride offer owned by the authenticated user.
func HandleCreateRide(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return fail(c, apperr.ErrInvalidCredential)
	}

	var req createRideRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrBadRequest, "invalid request body"))
	}
	if req.Seats == 0 {
		req.Seats = 1
	}

	ride := models.Ride{
		OwnerID:     principal.AccountID,
		OwnerRole:   principal.Role,
		OwnerName:   ownerName(principal),
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartAt:    req.DepartAt,
		Seats:       req.Seats,
		Notes:       req.Notes,
	}
	if err := ride.Validate(); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrValidationFailed, "ride validation failed"))
	}
	if err := rideRepo.Create(&ride); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrDatabase, ""))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "ride": ride})
}

// HandleListRides returns upcoming ride offers, soonest departure first.
func HandleListRides(c *fiber.Ctx) error {
	rides, err := rideRepo.ListUpcoming(time.Now(), rideListLimit)
	if err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrDatabase, ""))
	}
	return c.JSON(fiber.Map{"success": true, "rides": rides})
}

// HandleDeleteRide removes a ride offer; only its owner may do so.
func HandleDeleteRide(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return fail(c, apperr.ErrInvalidCredential)
	}

	ride, err := rideRepo.GetByUUID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.Wrap(err, apperr.ErrNotFound, "Ride not found"))
		}
		return fail(c, apperr.Wrap(err, apperr.ErrDatabase, ""))
	}
	if ride.OwnerID != principal.AccountID || ride.OwnerRole != principal.Role {
		return fail(c, apperr.New("forbidden", fiber.StatusForbidden, "not your ride"))
	}
	if err := rideRepo.Delete(ride.ID); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrDatabase, ""))
	}
	return c.JSON(fiber.Map{"success": true})
}

// ownerName resolves the display name for listings; falls back to the email
// when the profile cannot be loaded.
func ownerName(principal identity.Principal) string {
	if profileAccess != nil {
		if view, err := profileAccess.Read(principal); err == nil {
			if name, ok := view["fullName"].(string); ok && name != "" {
				return name
			}
		}
	}
	return principal.Email
}
