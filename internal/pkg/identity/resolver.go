// Package identity implements Google sign-in across the three role-scoped
// account stores: deciding which store owns an asserted email, which platform
// role the caller ends up with, and materializing or linking accounts on
// first contact.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/googleauth"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/utils"
)

// Principal is the authenticated caller derived from a verified session
// token: account id, email and platform role. Nothing else.
type Principal struct {
	AccountID uint
	Email     string
	Role      models.Role
}

// SignInResult is what a successful sign-in hands back to the transport
// layer.
type SignInResult struct {
	User  map[string]any
	Token string
	Role  models.Role
	IsNew bool
}

// Resolver decides, per sign-in, which account an asserted identity maps to.
type Resolver struct {
	repos    *repository.Repositories
	verifier googleauth.Verifier
	sessions *session.Manager
	log      *logrus.Logger
}

// NewResolver wires the resolver with its collaborators.
func NewResolver(repos *repository.Repositories, verifier googleauth.Verifier, sessions *session.Manager, log *logrus.Logger) *Resolver {
	return &Resolver{repos: repos, verifier: verifier, sessions: sessions, log: log}
}

// SignIn verifies the Google ID token assertion and resolves it to exactly
// one account:
//
//   - an existing account keeps its role, whatever the caller hinted;
//   - an unknown email creates an account in the hinted role's store
//     (student when the hint is absent or unusable);
//   - an existing account without a bound Google subject gets it bound once.
//
// At most one creation or one bind happens per call.
func (r *Resolver) SignIn(ctx context.Context, assertion, roleHint string) (*SignInResult, error) {
	claims, err := r.verifier.Verify(ctx, assertion)
	if err != nil {
		return nil, err
	}
	if !claims.EmailVerified {
		return nil, apperr.ErrEmailUnverified
	}

	email := strings.ToLower(claims.Email)
	fullName := claims.Name
	if fullName == "" {
		fullName = claims.Email
	}

	acc, existingRole, err := r.lookup(email)
	if err != nil {
		return nil, err
	}

	if acc != nil {
		return r.signInExisting(acc, existingRole, claims)
	}

	finalRole := models.RoleStudent
	if hinted, ok := models.ParseRole(strings.ToLower(roleHint)); ok {
		finalRole = hinted
	}
	return r.create(finalRole, fullName, email, claims)
}

// lookup finds the single account owning the email. The unified index is
// authoritative; the ordered three-store scan remains as fallback for rows
// that predate the index.
func (r *Resolver) lookup(email string) (models.Account, models.Role, error) {
	idx, err := r.repos.AccountIndex.Get(email)
	if err == nil {
		store := r.repos.ByRole(idx.Role)
		if store == nil {
			return nil, "", apperr.Wrap(errors.New("account index references unknown role"), apperr.ErrDatabase, "")
		}
		acc, err := store.GetByID(idx.AccountID)
		if err == nil {
			return acc, idx.Role, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Wrap(err, apperr.ErrDatabase, "")
		}
		// stale index row; fall through to the store scan
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Wrap(err, apperr.ErrDatabase, "")
	}

	for _, store := range r.repos.InLookupOrder() {
		acc, err := store.GetByEmail(email)
		if err == nil {
			return acc, store.Role(), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Wrap(err, apperr.ErrDatabase, "")
		}
	}
	return nil, "", nil
}

// signInExisting handles the established-account path: the stored role wins
// over any hint, and the Google subject is bound exactly once.
func (r *Resolver) signInExisting(acc models.Account, role models.Role, claims *googleauth.Claims) (*SignInResult, error) {
	if acc.GoogleSubject() == "" {
		acc.BindGoogleSubject(claims.Subject)
		if err := r.repos.ByRole(role).Update(acc); err != nil {
			return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
		}
		r.log.WithFields(logrus.Fields{"id": acc.AccountID(), "role": role}).Info("bound google subject to existing account")
	}
	return r.finish(acc, role, false)
}

func (r *Resolver) create(role models.Role, fullName, email string, claims *googleauth.Claims) (*SignInResult, error) {
	acc, err := models.NewAccount(role, fullName, email, claims.Subject, utils.GetGravatarURL(email, 200))
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal, "")
	}

	if err := r.repos.AccountIndex.CreateWithAccount(acc, role); err != nil {
		if repository.IsDuplicateKey(err) {
			// lost a concurrent first sign-in; the other writer owns the
			// email now, resolve against whatever it created
			existing, existingRole, lookupErr := r.lookup(email)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil {
				return r.signInExisting(existing, existingRole, claims)
			}
		}
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	r.log.WithFields(logrus.Fields{"id": acc.AccountID(), "role": role}).Info("created account on first sign-in")
	return r.finish(acc, role, true)
}

func (r *Resolver) finish(acc models.Account, role models.Role, isNew bool) (*SignInResult, error) {
	token, err := r.sessions.Issue(acc.AccountID(), acc.AccountEmail(), role)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal, "")
	}
	user, err := models.PublicProfile(acc, role)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrInternal, "")
	}
	return &SignInResult{User: user, Token: token, Role: role, IsNew: isNew}, nil
}
