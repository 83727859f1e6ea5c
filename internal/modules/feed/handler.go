package feed

import (
	"log"
	"net/http"
	"strings"

	"lrbook/internal/middleware"
	"lrbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts the same origin list as the CORS middleware; "*" allows
// any origin.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/bookings", h.Subscribe)
}

// Subscribe upgrades to a WebSocket streaming booking events.
//
// Browsers pass the JWT as ?token= since they cannot set headers on the
// handshake.
func (h *Handler) Subscribe(c *gin.Context) {
	agent, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed_upgrade_failed agent_id=%s error=%q", agent.ID, err.Error())
		return
	}

	log.Printf("feed_connected agent_id=%s role=%s", agent.ID, agent.Role)
	h.hub.Serve(conn, agent)
	log.Printf("feed_disconnected agent_id=%s", agent.ID)
}
