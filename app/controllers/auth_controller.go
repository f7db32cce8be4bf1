package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
)

var authResolver *identity.Resolver

// InitializeAuthController wires the sign-in resolver.
func InitializeAuthController(resolver *identity.Resolver) {
	authResolver = resolver
}

type googleSignInRequest struct {
	TokenID string `json:"tokenId"`
	Role    string `json:"role"`
}

// HandleGoogleSignIn accepts a Google ID token (plus an optional role hint
// for first-time accounts) and answers with a session token and the
// sanitized account.
func HandleGoogleSignIn(c *fiber.Ctx) error {
	var req googleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrBadRequest, "invalid request body"))
	}
	if req.TokenID == "" {
		return fail(c, apperr.New("bad_request", fiber.StatusBadRequest, "Missing ID token"))
	}

	result, err := authResolver.SignIn(c.UserContext(), req.TokenID, req.Role)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"token":    result.Token,
		"user":     result.User,
		"new_user": result.IsNew,
	})
}

// HandleDebugToken decodes (without verifying) the bearer token so frontend
// developers can inspect its payload. Dev aid only.
func HandleDebugToken(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}
	if token == "" {
		return fail(c, apperr.ErrInvalidCredential)
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrBadRequest, "Invalid token"))
	}
	return c.JSON(fiber.Map{"success": true, "payload": claims})
}
