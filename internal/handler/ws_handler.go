package handler

import (
	"go-backoffice-api/internal/middleware"
	"go-backoffice-api/internal/service"
	"go-backoffice-api/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WSHandler struct {
	authService service.AuthService
	hub         *ws.Hub
}

func NewWSHandler(authService service.AuthService, hub *ws.Hub) *WSHandler {
	return &WSHandler{authService: authService, hub: hub}
}

// Upgrade authenticates the ?token= query value before switching protocols.
// GET /ws?token=...
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}

	token := c.Query("token")
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing token"})
	}
	employee, err := h.authService.Authenticate(token)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals(middleware.LocalUserID, employee.ID.String())
	return c.Next()
}

// Serve registers the connection with the hub and keeps it open until the client leaves.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals(middleware.LocalUserID).(string)

		h.hub.Register <- &ws.Client{Conn: c, UserID: userID}
		defer func() { h.hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
