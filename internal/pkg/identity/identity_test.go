package identity

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/googleauth"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
)

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "identity_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{}, &models.Faculty{}, &models.Admin{},
		&models.AccountIndex{},
	))
	return repository.NewRepositories(db)
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

// fakeVerifier returns canned claims keyed by the assertion string.
type fakeVerifier struct {
	claims map[string]*googleauth.Claims
	err    error
}

func (f *fakeVerifier) Verify(_ context.Context, assertion string) (*googleauth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.claims[assertion]
	if !ok {
		return nil, context.Canceled
	}
	return claims, nil
}

func newTestResolver(t *testing.T, repos *repository.Repositories, verifier googleauth.Verifier) (*Resolver, *session.Manager) {
	t.Helper()
	sessions := session.NewManager("test_secret")
	return NewResolver(repos, verifier, sessions, newTestLogger()), sessions
}

func verifiedClaims(sub, email, name string) *googleauth.Claims {
	return &googleauth.Claims{
		Subject:       sub,
		Email:         email,
		EmailVerified: true,
		Name:          name,
	}
}
