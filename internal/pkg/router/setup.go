package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/chat"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
)

// Router installs one slice of the route table on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps carries the wired services the routers hand to the controllers.
type Deps struct {
	Resolver *identity.Resolver
	Profiles *identity.Profiles
	Sessions *session.Manager
	Hub      *chat.Hub
}

// InstallRouter registers every route. The API router goes first so its CORS
// and limiter middleware sit in front of the websocket upgrade.
func InstallRouter(app *fiber.App, deps Deps) {
	setup(app, NewApiRouter(deps), NewSocketRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
