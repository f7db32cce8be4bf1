package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/app/models"
)

// UserContext is the authenticated principal for a request: account id,
// email and platform role, as carried by a verified session token.
type UserContext struct {
	AccountID  uint        `json:"account_id"`
	Email      string      `json:"email"`
	Role       models.Role `json:"role"`
	IsLoggedIn bool        `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// SetUserContext stores the principal on the request.
func SetUserContext(c *fiber.Ctx, ctx UserContext) {
	c.Locals(KeyUserContext, ctx)
}

// IsLoggedIn checks if the current request carries a valid principal
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetAccountID returns the current account's ID, or 0 if not logged in
func GetAccountID(c *fiber.Ctx) uint {
	return GetUserContext(c).AccountID
}

// GetRole returns the current principal's platform role, or "" if anonymous
func GetRole(c *fiber.Ctx) models.Role {
	return GetUserContext(c).Role
}
