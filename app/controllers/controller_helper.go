package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/usercontext"
)

// fail renders any error as the standard JSON error body with its HTTP
// status. Untyped errors come out as 500 internal_error.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.Status(err)).JSON(apperr.Payload(err))
}

// principalFromContext converts the request's user context into the identity
// layer's principal.
func principalFromContext(c *fiber.Ctx) (identity.Principal, bool) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return identity.Principal{}, false
	}
	return identity.Principal{
		AccountID: userCtx.AccountID,
		Email:     userCtx.Email,
		Role:      userCtx.Role,
	}, true
}
