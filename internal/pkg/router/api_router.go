package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/CampusLinkHQ/CampusLink/app/controllers"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/env"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/middleware"
)

// devOrigins are always allowed so local frontends work without config.
const devOrigins = "http://localhost:3000, http://localhost:5173"

type ApiRouter struct {
	deps Deps
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	controllers.InitializeAuthController(h.deps.Resolver)
	controllers.InitializeUserController(h.deps.Profiles)
	controllers.InitializeStudentController()
	controllers.InitializeRideController()
	controllers.InitializeChatController(h.deps.Hub, h.deps.Sessions)

	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: allowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}), limiter.New(limiter.Config{
		Max: 120,
	}))

	api.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "pong",
		})
	})

	api.Post("/auth/google", controllers.HandleGoogleSignIn)
	api.Get("/debug/token", controllers.HandleDebugToken)

	// public student directory
	api.Get("/student/profile", controllers.HandleStudentLookup)

	// public ride board
	api.Get("/rides", controllers.HandleListRides)

	auth := middleware.BearerAuthMiddleware(h.deps.Sessions)

	user := api.Group("/user", auth)
	user.Get("/me", controllers.HandleGetOwnProfile)
	user.Put("/me", controllers.HandleUpdateOwnProfile)
	user.Patch("/me", controllers.HandleUpdateOwnProfile)

	api.Post("/rides", auth, controllers.HandleCreateRide)
	api.Delete("/rides/:id", auth, controllers.HandleDeleteRide)

	api.Get("/chat/:room/messages", auth, controllers.HandleChatHistory)
}

func allowedOrigins() string {
	if origin := env.GetEnv("FRONTEND_ORIGIN", ""); origin != "" {
		return origin + ", " + devOrigins
	}
	return devOrigins
}

func NewApiRouter(deps Deps) *ApiRouter {
	return &ApiRouter{deps: deps}
}
