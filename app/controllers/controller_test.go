package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CampusLinkHQ/CampusLink/app/models"
	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/middleware"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
)

var (
	testSetupOnce sync.Once
	testSessions  *session.Manager
	testRepos     *repository.Repositories
)

// setupTestApp wires the controllers against a throwaway SQLite database.
// The repository factory is a process-wide singleton, so all tests in this
// package share one database.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	testSetupOnce.Do(func() {
		dir, err := os.MkdirTemp("", "campuslink-controllers-test")
		require.NoError(t, err)
		dbPath := filepath.Join(dir, "controllers_test.db")
		db, dbErr := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		require.NoError(t, dbErr)
		require.NoError(t, db.AutoMigrate(
			&models.Student{}, &models.Faculty{}, &models.Admin{},
			&models.AccountIndex{}, &models.Ride{}, &models.ChatMessage{},
		))
		repository.InitializeFactory(db)
		testRepos = repository.GetGlobalRepositories()
		testSessions = session.NewManager("test_secret")
	})

	InitializeUserController(identity.NewProfiles(testRepos))
	InitializeStudentController()
	InitializeRideController()

	auth := middleware.BearerAuthMiddleware(testSessions)

	app := fiber.New()
	app.Post("/api/auth/google", HandleGoogleSignIn)
	app.Get("/api/debug/token", HandleDebugToken)
	app.Get("/api/student/profile", HandleStudentLookup)
	app.Get("/api/rides", HandleListRides)
	app.Post("/api/rides", auth, HandleCreateRide)
	app.Delete("/api/rides/:id", auth, HandleDeleteRide)
	app.Get("/api/user/me", auth, HandleGetOwnProfile)
	app.Patch("/api/user/me", auth, HandleUpdateOwnProfile)
	return app
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()
	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestGoogleSignInRequiresToken(t *testing.T) {
	app := setupTestApp(t)

	body, _ := json.Marshal(map[string]any{"role": "student"})
	req := httptest.NewRequest("POST", "/api/auth/google", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Missing ID token", payload["message"])
}

func TestStudentLookupRequiresQueryParam(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/student/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentLookupByRollNumber(t *testing.T) {
	app := setupTestApp(t)

	acc, err := models.NewAccount(models.RoleStudent, "Jordan Lee", "jordan.lookup@campus.edu", "sub-lookup", "")
	require.NoError(t, err)
	student := acc.(*models.Student)
	roll := "CS2021-777"
	student.RollNumber = &roll
	require.NoError(t, testRepos.AccountIndex.CreateWithAccount(student, models.RoleStudent))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/student/profile?rollNumber=CS2021-777", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	view := payload["student"].(map[string]any)
	assert.Equal(t, "Jordan Lee", view["fullName"])
	assert.NotContains(t, view, "password")
	assert.NotContains(t, view, "googleId")

	resp, err = app.Test(httptest.NewRequest("GET", "/api/student/profile?rollNumber=NOPE", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDebugTokenDecodesWithoutVerifying(t *testing.T) {
	app := setupTestApp(t)

	token, err := testSessions.Issue(5, "debug@campus.edu", models.RoleStudent)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/debug/token", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	claims := payload["payload"].(map[string]any)
	assert.Equal(t, "debug@campus.edu", claims["email"])
}

func TestRideLifecycle(t *testing.T) {
	app := setupTestApp(t)

	acc, err := models.NewAccount(models.RoleStudent, "Driver", "driver@campus.edu", "sub-driver", "")
	require.NoError(t, err)
	require.NoError(t, testRepos.AccountIndex.CreateWithAccount(acc, models.RoleStudent))
	ownerToken, err := testSessions.Issue(acc.AccountID(), "driver@campus.edu", models.RoleStudent)
	require.NoError(t, err)

	other, err := models.NewAccount(models.RoleFaculty, "Rider", "rider@campus.edu", "sub-rider", "")
	require.NoError(t, err)
	require.NoError(t, testRepos.AccountIndex.CreateWithAccount(other, models.RoleFaculty))
	otherToken, err := testSessions.Issue(other.AccountID(), "rider@campus.edu", models.RoleFaculty)
	require.NoError(t, err)

	// unauthenticated create is refused
	body, _ := json.Marshal(map[string]any{
		"origin": "Campus", "destination": "Airport",
		"departAt": time.Now().Add(3 * time.Hour).Format(time.RFC3339), "seats": 3,
	})
	req := httptest.NewRequest("POST", "/api/rides", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// authenticated create
	req = httptest.NewRequest("POST", "/api/rides", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp.Body)["ride"].(map[string]any)
	rideUUID := created["uuid"].(string)
	require.NotEmpty(t, rideUUID)

	// shows up in the public listing
	resp, err = app.Test(httptest.NewRequest("GET", "/api/rides", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// someone else cannot delete it, and the refusal carries the typed body
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/rides/%s", rideUUID), nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	refusal := decodeBody(t, resp.Body)
	assert.Equal(t, false, refusal["success"])
	assert.Equal(t, "forbidden", refusal["code"])
	assert.Equal(t, "not your ride", refusal["message"])

	// the owner can
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/rides/%s", rideUUID), nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOwnProfileRoundTrip(t *testing.T) {
	app := setupTestApp(t)

	acc, err := models.NewAccount(models.RoleAdmin, "Sam K", "sam.profile@campus.edu", "sub-sam", "")
	require.NoError(t, err)
	require.NoError(t, testRepos.AccountIndex.CreateWithAccount(acc, models.RoleAdmin))
	token, err := testSessions.Issue(acc.AccountID(), "sam.profile@campus.edu", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user := decodeBody(t, resp.Body)["user"].(map[string]any)
	assert.Equal(t, "admin", user["role"])

	// role key in a patch is ignored, jobTitle is applied
	body, _ := json.Marshal(map[string]any{"role": "superadmin", "jobTitle": "Librarian"})
	req = httptest.NewRequest("PATCH", "/api/user/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user = decodeBody(t, resp.Body)["user"].(map[string]any)
	assert.Equal(t, "Librarian", user["jobTitle"])
	assert.Equal(t, "admin", user["role"])

	// a patch with nothing writable left is rejected
	body, _ = json.Marshal(map[string]any{"rollNumber": "X", "role": "student"})
	req = httptest.NewRequest("PATCH", "/api/user/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "No valid fields to update", payload["message"])
}
