package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/env"
)

// TokenTTL is the fixed session validity window.
const TokenTTL = 7 * 24 * time.Hour

const issuer = "campuslink"

// Claims is everything a session token carries: the account id, its email
// and the platform role it resolved to. Authorization rests on these three
// values alone.
type Claims struct {
	AccountID uint        `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens.
type Manager struct {
	key []byte
}

// NewManager builds a Manager with the given HMAC secret.
func NewManager(secret string) *Manager {
	return &Manager{key: []byte(secret)}
}

// NewManagerFromEnv reads JWT_SECRET. The default mirrors the dev fallback
// the frontend expects; never run production without a real secret.
func NewManagerFromEnv() *Manager {
	return NewManager(env.GetEnv("JWT_SECRET", "dev_jwt_secret"))
}

// Issue signs a session token for the resolved principal.
func (m *Manager) Issue(accountID uint, email string, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Verify parses and validates a session token. Any failure (expired,
// malformed, wrong signature or algorithm) comes back as InvalidCredential.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInvalidCredential, "")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.ErrInvalidCredential
	}
	if _, valid := models.ParseRole(string(claims.Role)); !valid {
		return nil, apperr.ErrInvalidCredential
	}
	return claims, nil
}
