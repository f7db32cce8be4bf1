package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
)

func seedStudent(t *testing.T, repos *repository.Repositories, email string) Principal {
	t.Helper()
	acc, err := models.NewAccount(models.RoleStudent, "Jordan Lee", email, "sub-"+email, "")
	require.NoError(t, err)
	require.NoError(t, repos.AccountIndex.CreateWithAccount(acc, models.RoleStudent))
	return Principal{AccountID: acc.AccountID(), Email: email, Role: models.RoleStudent}
}

func seedAdmin(t *testing.T, repos *repository.Repositories, email string) Principal {
	t.Helper()
	acc, err := models.NewAccount(models.RoleAdmin, "Sam K", email, "sub-"+email, "")
	require.NoError(t, err)
	require.NoError(t, repos.AccountIndex.CreateWithAccount(acc, models.RoleAdmin))
	return Principal{AccountID: acc.AccountID(), Email: email, Role: models.RoleAdmin}
}

func TestProfileReadIsSanitizedAndRoleAnnotated(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedStudent(t, repos, "jordan@campus.edu")

	view, err := profiles.Read(principal)
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, view["role"])
	assert.Equal(t, "jordan@campus.edu", view["email"])
	assert.NotContains(t, view, "password")
	assert.NotContains(t, view, "googleId")
}

func TestProfileUpdateAppliesAllowedFields(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedStudent(t, repos, "jordan@campus.edu")

	view, err := profiles.Update(principal, map[string]any{
		"rollNumber":     "CS2021-042",
		"gender":         models.GenderFemale,
		"programAndYear": "BTech CSE 3rd Year",
		"bio":            "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "CS2021-042", view["rollNumber"])
	assert.Equal(t, models.GenderFemale, view["gender"])

	// persisted, not just echoed
	stored, err := repos.Directory.GetByRollNumber("CS2021-042")
	require.NoError(t, err)
	assert.Equal(t, "BTech CSE 3rd Year", stored.ProgramAndYear)
}

func TestProfileUpdateDropsRoleSilentlyForAdmins(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedAdmin(t, repos, "sam@campus.edu")

	view, err := profiles.Update(principal, map[string]any{
		"role":     "superadmin",
		"jobTitle": "Librarian",
	})
	require.NoError(t, err)

	// jobTitle applied, role untouched
	assert.Equal(t, "Librarian", view["jobTitle"])
	assert.Equal(t, models.RoleAdmin, view["role"])
}

func TestProfileUpdateRejectsFullyDroppedPatch(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedAdmin(t, repos, "sam@campus.edu")

	_, err := profiles.Update(principal, map[string]any{
		"role":       "superadmin",
		"rollNumber": "X",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrEmptyPatch.Code, apperr.Code(err))
}

func TestProfileUpdateRejectsInvalidEnum(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedStudent(t, repos, "jordan@campus.edu")

	_, err := profiles.Update(principal, map[string]any{"gender": "Unknown"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrValidationFailed.Code, apperr.Code(err))

	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "Gender")

	// the failed patch must not have been committed
	view, err := profiles.Read(principal)
	require.NoError(t, err)
	assert.Equal(t, models.GenderUnspecified, view["gender"])
}

func TestProfileUpdateMovesIndexOnEmailChange(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedStudent(t, repos, "jordan@campus.edu")

	_, err := profiles.Update(principal, map[string]any{"email": "jlee@campus.edu"})
	require.NoError(t, err)

	idx, err := repos.AccountIndex.Get("jlee@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, idx.Role)
	assert.Equal(t, principal.AccountID, idx.AccountID)

	_, err = repos.AccountIndex.Get("jordan@campus.edu")
	assert.Error(t, err, "old index row must be gone")
}

func TestProfileUpdateLowercasesEmail(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedStudent(t, repos, "jordan@campus.edu")

	view, err := profiles.Update(principal, map[string]any{"email": "JLee@Campus.EDU"})
	require.NoError(t, err)
	assert.Equal(t, "jlee@campus.edu", view["email"])

	// stored lowercase on the account row and in the index
	_, err = repos.Students.GetByEmail("jlee@campus.edu")
	require.NoError(t, err)
	idx, err := repos.AccountIndex.Get("jlee@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, principal.AccountID, idx.AccountID)
}

func TestProfileUpdateEmailConflictAcrossStores(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)
	principal := seedStudent(t, repos, "jordan@campus.edu")
	seedAdmin(t, repos, "sam@campus.edu")

	// taking an email owned by the admin store must fail whole
	_, err := profiles.Update(principal, map[string]any{"email": "sam@campus.edu"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrConflict.Code, apperr.Code(err))

	view, err := profiles.Read(principal)
	require.NoError(t, err)
	assert.Equal(t, "jordan@campus.edu", view["email"])
}

func TestProfileReadUnknownAccount(t *testing.T) {
	repos := newTestRepos(t)
	profiles := NewProfiles(repos)

	_, err := profiles.Read(Principal{AccountID: 404, Email: "ghost@campus.edu", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrNotFound.Code, apperr.Code(err))
}
