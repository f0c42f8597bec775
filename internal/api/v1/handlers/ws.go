package handlers

import (
	"team-collab/internal/middleware"
	myws "team-collab/internal/websocket"
	"team-collab/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WSHandler struct {
	hub      *myws.Hub
	verifier middleware.TokenVerifier
}

func NewWSHandler(hub *myws.Hub, verifier middleware.TokenVerifier) *WSHandler {
	return &WSHandler{hub: hub, verifier: verifier}
}

// Upgrade authenticates the ?token= query parameter before the websocket
// handshake. Browsers cannot set headers on websocket requests.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	identity, err := h.verifier.Verify(c.Query("token"))
	if err != nil {
		logger.SecurityLogger.Warn("Rejected websocket token", zap.Error(err))
		return fiber.ErrUnauthorized
	}
	c.Locals("userID", identity.UserID)
	return c.Next()
}

// Serve registers the connection with the hub and reads until the client
// goes away. Incoming messages are ignored.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(int64)
		client := &myws.Client{UserID: userID, Conn: conn}
		h.hub.Register(client)
		defer h.hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

var _ myws.Conn = (*websocket.Conn)(nil)
