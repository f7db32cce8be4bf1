package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/cache"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/chat"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/database"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/env"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/googleauth"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/logging"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/router"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "0.0.0.0"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	appLog := logging.Setup()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	sessions := session.NewManagerFromEnv()
	verifier := googleauth.NewVerifier(env.GetEnv("GOOGLE_CLIENT_ID", ""))
	resolver := identity.NewResolver(repos, verifier, sessions, appLog)
	profiles := identity.NewProfiles(repos)

	hub := chat.NewHub(repos.Chat, appLog)
	go hub.Run()

	app := fiber.New(fiber.Config{
		AppName:   "CampusLink",
		BodyLimit: 1 << 20, // JSON API, nothing bigger than a profile patch
	})

	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// SWAGGER / OPENAPI
	if specPath := findOpenAPISpec(); specPath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: specPath,
			Path:     "v1",
		}))
	} else {
		appLog.Warn("openapi spec not found, /docs/api disabled")
	}

	// ROUTER
	router.InstallRouter(app, router.Deps{
		Resolver: resolver,
		Profiles: profiles,
		Sessions: sessions,
		Hub:      hub,
	})

	return app
}

// findOpenAPISpec locates the bundled spec whether the binary runs from the
// project root or from cmd/campuslink.
func findOpenAPISpec() string {
	for _, base := range []string{"./", "../../", "../../../"} {
		path := base + "public/docs/v1/openapi.yml"
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
