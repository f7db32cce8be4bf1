package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/app/controllers"
)

type SocketRouter struct {
	deps Deps
}

func (h SocketRouter) InstallRouter(app *fiber.App) {
	ws := app.Group("/ws")
	ws.Use("/chat", controllers.HandleChatUpgrade)
	ws.Get("/chat", controllers.HandleChatSocket())
}

func NewSocketRouter(deps Deps) *SocketRouter {
	return &SocketRouter{deps: deps}
}
