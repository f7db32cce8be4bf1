package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/usercontext"
)

// BearerAuthMiddleware verifies the session token and attaches the principal
// to the request. Requests without a valid token get a JSON 401.
func BearerAuthMiddleware(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(apperr.Payload(apperr.ErrInvalidCredential))
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			return c.Status(apperr.Status(err)).JSON(apperr.Payload(err))
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			AccountID:  claims.AccountID,
			Email:      claims.Email,
			Role:       claims.Role,
			IsLoggedIn: true,
		})

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
