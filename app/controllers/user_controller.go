package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
)

var profileAccess *identity.Profiles

// InitializeUserController wires the profile access controller.
func InitializeUserController(profiles *identity.Profiles) {
	profileAccess = profiles
}

// HandleGetOwnProfile returns the authenticated account, sanitized and
// annotated with its platform role.
func HandleGetOwnProfile(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return fail(c, apperr.ErrInvalidCredential)
	}

	user, err := profileAccess.Read(principal)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

// HandleUpdateOwnProfile patches the authenticated account. Fields outside
// the role's allow-list are dropped silently.
func HandleUpdateOwnProfile(c *fiber.Ctx) error {
	principal, ok := principalFromContext(c)
	if !ok {
		return fail(c, apperr.ErrInvalidCredential)
	}

	patch := map[string]any{}
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrBadRequest, "invalid request body"))
	}

	user, err := profileAccess.Update(principal, patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}
