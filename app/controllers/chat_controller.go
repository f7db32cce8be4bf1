package controllers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/CampusLinkHQ/CampusLink/app/repository"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/apperr"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/chat"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/identity"
	"github.com/CampusLinkHQ/CampusLink/internal/pkg/session"
)

const chatHistoryLimit = 50

var (
	chatHub      *chat.Hub
	chatRepo     repository.ChatRepository
	chatSessions *session.Manager
)

// InitializeChatController wires the relay hub and session verifier.
func InitializeChatController(hub *chat.Hub, sessions *session.Manager) {
	chatHub = hub
	chatRepo = repository.GetGlobalRepositories().Chat
	chatSessions = sessions
}

// HandleChatUpgrade gates the websocket handshake. Browsers cannot set an
// Authorization header on the upgrade request, so the session token rides in
// the token query parameter instead.
func HandleChatUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	claims, err := chatSessions.Verify(c.Query("token"))
	if err != nil {
		return fail(c, err)
	}
	c.Locals("chat_claims", claims)
	return c.Next()
}

// HandleChatSocket runs the relay read loop for an upgraded connection.
func HandleChatSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		claims, ok := conn.Locals("chat_claims").(*session.Claims)
		if !ok {
			conn.Close()
			return
		}
		sender := chat.Sender{
			ID:   claims.AccountID,
			Role: claims.Role,
			Name: chatSenderName(claims),
		}
		chatHub.ServeConn(conn, sender)
	})
}

// HandleChatHistory returns the most recent messages of a room, oldest first.
func HandleChatHistory(c *fiber.Ctx) error {
	room := c.Params("room")
	if room == "" {
		return fail(c, apperr.New("bad_request", fiber.StatusBadRequest, "Room is required"))
	}
	messages, err := chatRepo.RecentByRoom(room, chatHistoryLimit)
	if err != nil {
		return fail(c, apperr.Wrap(err, apperr.ErrDatabase, ""))
	}
	return c.JSON(fiber.Map{"success": true, "messages": messages})
}

func chatSenderName(claims *session.Claims) string {
	if profileAccess != nil {
		principal := identity.Principal{AccountID: claims.AccountID, Email: claims.Email, Role: claims.Role}
		if view, err := profileAccess.Read(principal); err == nil {
			if name, ok := view["fullName"].(string); ok && name != "" {
				return name
			}
		}
	}
	return claims.Email
}
