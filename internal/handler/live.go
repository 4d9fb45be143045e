package handler

import (
	"fmt"
	"net/http"

	"fundchamps/internal/live"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type LiveHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is public and read-only; origin checks add nothing.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *LiveHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the handshake error response.
		return fmt.Errorf("upgrade websocket: %w", err)
	}

	h.hub.ServeClient(conn)
	return nil
}
