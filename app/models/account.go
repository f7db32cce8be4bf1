package models

import (
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
)

// Role is the platform role of an account. It is never stored as a column;
// it is derived from which table a record lives in. Not to be confused with
// Admin.JobTitle, which is a descriptive job title.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// LookupOrder is the fixed priority in which the account stores are scanned
// when resolving an email: student first, then faculty, then admin.
var LookupOrder = []Role{RoleStudent, RoleFaculty, RoleAdmin}

// ParseRole normalizes a caller-supplied role hint. Unknown values are not an
// error; sign-in falls back to student when the hint is unusable.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Account is the common surface the identity resolver needs from the three
// role-specific account types.
type Account interface {
	AccountID() uint
	AccountEmail() string
	AccountName() string
	GoogleSubject() string
	BindGoogleSubject(sub string)
	Validate() error
}

// NewAccount materializes a fresh account in the shape required by the given
// role. Role-specific fields stay at their defaults and are filled in later
// through profile updates. The password is an unusable bcrypt placeholder,
// same as any OAuth-created account.
func NewAccount(role Role, fullName, email, googleSub, avatarURL string) (Account, error) {
	placeholder, err := HashPassword("oauth_" + uuid.NewString())
	if err != nil {
		return nil, err
	}
	switch role {
	case RoleStudent:
		return &Student{FullName: fullName, Email: email, GoogleID: &googleSub, Gender: GenderUnspecified, AvatarURL: avatarURL, Password: placeholder}, nil
	case RoleFaculty:
		return &Faculty{FullName: fullName, Email: email, GoogleID: &googleSub, AvatarURL: avatarURL, Password: placeholder}, nil
	case RoleAdmin:
		return &Admin{FullName: fullName, Email: email, GoogleID: &googleSub, AvatarURL: avatarURL, Password: placeholder}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

// PublicProfile renders an account for API responses: secret fields (password,
// google subject) are dropped via their json tags, and the derived platform
// role is attached explicitly so clients can route on it.
func PublicProfile(acc Account, role Role) (map[string]any, error) {
	raw, err := json.Marshal(acc)
	if err != nil {
		return nil, err
	}
	view := map[string]any{}
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}
	view["role"] = role
	return view, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
