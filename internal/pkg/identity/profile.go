package identity

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
)

// Profiles is the access controller for role-scoped profile reads and
// writes. Which fields a principal may write is a pure function of its role;
// the allow-lists live next to the models.
type Profiles struct {
	repos *repository.Repositories
}

// NewProfiles creates the profile access controller.
func NewProfiles(repos *repository.Repositories) *Profiles {
	return &Profiles{repos: repos}
}

// Read loads the principal's own account from the store its role owns and
// returns the sanitized, role-annotated view.
func (p *Profiles) Read(principal Principal) (map[string]any, error) {
	acc, err := p.load(principal)
	if err != nil {
		return nil, err
	}
	return publicView(acc, principal.Role)
}

// Update applies a field patch to the principal's own account. Keys outside
// the role's allow-list are dropped silently; an update whose every key was
// dropped is an error. The surviving patch is validated against the model's
// constraints and committed whole or not at all.
func (p *Profiles) Update(principal Principal, patch map[string]any) (map[string]any, error) {
	filtered := models.FilterPatch(principal.Role, patch)
	if len(filtered) == 0 {
		return nil, apperr.ErrEmptyPatch
	}
	// emails are stored lowercase, same as sign-in normalizes them
	if v, ok := filtered["email"].(string); ok {
		filtered["email"] = strings.ToLower(v)
	}

	acc, err := p.load(principal)
	if err != nil {
		return nil, err
	}
	previousEmail := acc.AccountEmail()

	if err := applyPatch(acc, filtered); err != nil {
		return nil, err
	}
	if err := acc.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := p.repos.AccountIndex.UpdateWithAccount(acc, principal.Role, previousEmail); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperr.Wrap(err, apperr.ErrConflict, "email or roll number already in use")
		}
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}

	return publicView(acc, principal.Role)
}

func (p *Profiles) load(principal Principal) (models.Account, error) {
	store := p.repos.ByRole(principal.Role)
	if store == nil {
		return nil, apperr.ErrInvalidCredential
	}
	acc, err := store.GetByID(principal.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(err, apperr.ErrNotFound, "User not found")
		}
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return acc, nil
}

// applyPatch overlays the filtered patch onto the loaded record via a JSON
// round trip, so patch keys address the same field names the API serves and
// absent fields keep their stored values.
func applyPatch(acc models.Account, patch map[string]any) error {
	raw, err := json.Marshal(patch)
	if err != nil {
		return apperr.Wrap(err, apperr.ErrValidationFailed, "malformed patch")
	}
	if err := json.Unmarshal(raw, acc); err != nil {
		return apperr.Wrap(err, apperr.ErrValidationFailed, "patch field has wrong type")
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return apperr.WithFields(apperr.ErrValidationFailed, fields)
	}
	return apperr.Wrap(err, apperr.ErrValidationFailed, "")
}

func publicView(acc models.Account, role models.Role) (map[string]any, error) {
	view, err := models.PublicProfile(acc, role)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal, "")
	}
	return view, nil
}
