package feed

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"lrbook/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// connection is one subscribed client.
type connection struct {
	agent domain.AgentIdentity
	conn  *websocket.Conn
	send  chan []byte
}

// Hub fans booking events out to connected agents. Admins see every event,
// agents only events for bookings they created.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	closed      bool
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*connection]struct{})}
}

func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.connections[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Count reports the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Publish never blocks: a client whose buffer is full is disconnected.
func (h *Hub) Publish(ev domain.BookingEvent) {
	if ev.Booking == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("feed_marshal_failed type=%s error=%q", ev.Type, err.Error())
		return
	}

	var slow []*connection
	h.mu.RLock()
	for c := range h.connections {
		if !c.agent.IsAdmin() && c.agent.ID != ev.Booking.AgentID {
			continue
		}
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("feed_client_dropped agent_id=%s reason=slow", c.agent.ID)
		h.unregister(c)
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

// Serve registers the connection and blocks until the client goes away.
func (h *Hub) Serve(conn *websocket.Conn, agent domain.AgentIdentity) {
	c := &connection{
		agent: agent,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// readPump only drains control frames; clients do not send commands.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed_read_error agent_id=%s error=%q", c.agent.ID, err.Error())
			}
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
