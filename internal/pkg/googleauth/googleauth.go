// Package googleauth verifies Google ID token assertions handed over by the
// frontend's Google sign-in widget.
package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
)

// Claims are the identity assertions CampusLink consumes from a verified
// Google ID token.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Audience      string
}

// Verifier validates an ID token assertion and extracts its claims.
// Implementations must reject tokens whose audience is not ours.
type Verifier interface {
	Verify(ctx context.Context, assertion string) (*Claims, error)
}

// googleVerifier validates tokens against Google's published certificates.
type googleVerifier struct {
	clientID string
}

// NewVerifier builds the production verifier. clientID is the OAuth client id
// the frontend uses; idtoken.Validate enforces it as the expected audience.
func NewVerifier(clientID string) Verifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, assertion string) (*Claims, error) {
	payload, err := idtoken.Validate(ctx, assertion, g.clientID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrAssertionInvalid, "")
	}

	claims := &Claims{
		Subject:  payload.Subject,
		Audience: payload.Audience,
	}
	if v, ok := payload.Claims["email"].(string); ok {
		claims.Email = v
	}
	switch v := payload.Claims["email_verified"].(type) {
	case bool:
		claims.EmailVerified = v
	case string:
		// tokeninfo-style responses encode the flag as a string
		claims.EmailVerified = v == "true"
	}
	if v, ok := payload.Claims["name"].(string); ok {
		claims.Name = v
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, apperr.Wrap(fmt.Errorf("token missing sub or email claim"), apperr.ErrAssertionInvalid, "")
	}
	return claims, nil
}
