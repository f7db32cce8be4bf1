package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
)

var directoryRepo repository.StudentDirectoryRepository

// InitializeStudentController wires the public student directory.
func InitializeStudentController() {
	directoryRepo = repository.GetGlobalRepositories().Directory
}

// HandleStudentLookup serves the public directory: find a student profile by
// email or roll number. The response is the sanitized profile view.
func HandleStudentLookup(c *fiber.Ctx) error {
	email := c.Query("email")
	rollNumber := c.Query("rollNumber")
	if email == "" && rollNumber == "" {
		return fail(c, apperr.New("bad_request", fiber.StatusBadRequest, "Email or roll number is required"))
	}

	var (
		student *models.Student
		err     error
	)
	if email != "" {
		student, err = directoryRepo.GetByEmail(email)
	} else {
		student, err = directoryRepo.GetByRollNumber(rollNumber)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, apperr.Wrap(err, apperr.ErrNotFound, "Student not found"))
		}
		return fail(c, apperr.Wrap(err, apperr.ErrDatabase, ""))
	}

	view, err := models.PublicProfile(student, models.RoleStudent)
	if err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrInternal, ""))
	}
	return c.JSON(fiber.Map{"success": true, "student": view})
}
