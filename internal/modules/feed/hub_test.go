package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrbook/internal/domain"
	"lrbook/internal/middleware"
	"lrbook/internal/pkg/jwt"
)

func setupServer(t *testing.T) (*httptest.Server, *Hub, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	tokens := jwt.New("feed-secret-feed-secret-feed-secret", time.Hour)
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.JWTAuth(tokens, nil))
	NewHandler(hub, []string{"*"}).RegisterRoutes(v1)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv, hub, tokens
}

func dial(t *testing.T, srv *httptest.Server, tokens *jwt.Service, id string, role domain.AgentRole) *websocket.Conn {
	t.Helper()
	tok, err := tokens.GenerateToken(id, string(role), id, "Chennai")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/bookings?token=" + tok
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.BookingEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev domain.BookingEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestHub_RoutesEventsByRole(t *testing.T) {
	srv, hub, tokens := setupServer(t)

	admin := dial(t, srv, tokens, "admin-1", domain.RoleAdmin)
	agent1 := dial(t, srv, tokens, "agent-1", domain.RoleAgent)
	agent2 := dial(t, srv, tokens, "agent-2", domain.RoleAgent)
	require.Eventually(t, func() bool { return hub.Count() == 3 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.BookingEvent{
		Type:    domain.EventBookingCreated,
		Booking: &domain.Booking{ID: "b1", LRNumber: "LR-CHN-PD-AAAAAA", AgentID: "agent-1"},
	})
	hub.Publish(domain.BookingEvent{
		Type:           domain.EventBookingStatusChanged,
		Booking:        &domain.Booking{ID: "b2", AgentID: "agent-2", Status: domain.BookingInTransit},
		PreviousStatus: domain.BookingBooked,
	})

	ev := readEvent(t, admin)
	assert.Equal(t, "b1", ev.Booking.ID)
	ev = readEvent(t, admin)
	assert.Equal(t, "b2", ev.Booking.ID)
	assert.Equal(t, domain.BookingBooked, ev.PreviousStatus)

	ev = readEvent(t, agent1)
	assert.Equal(t, domain.EventBookingCreated, ev.Type)
	assert.Equal(t, "LR-CHN-PD-AAAAAA", ev.Booking.LRNumber)

	ev = readEvent(t, agent2)
	assert.Equal(t, "b2", ev.Booking.ID)
}

func TestHub_RejectsMissingToken(t *testing.T) {
	srv, _, _ := setupServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/bookings"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	c := &connection{
		agent: domain.AgentIdentity{ID: "agent-1", Role: domain.RoleAgent},
		send:  make(chan []byte, 1),
	}
	require.True(t, hub.register(c))

	ev := domain.BookingEvent{Type: domain.EventBookingCreated, Booking: &domain.Booking{AgentID: "agent-1"}}
	hub.Publish(ev)
	assert.Equal(t, 1, hub.Count())

	hub.Publish(ev)
	assert.Equal(t, 0, hub.Count())

	_, ok := <-c.send
	assert.True(t, ok)
	_, ok = <-c.send
	assert.False(t, ok)
}

func TestHub_ClosedRefusesRegistration(t *testing.T) {
	hub := NewHub()
	hub.Close()
	assert.False(t, hub.register(&connection{send: make(chan []byte, 1)}))
	hub.Publish(domain.BookingEvent{Booking: &domain.Booking{}})
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))
}
