package notification

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSEvent is a real-time event pushed to connected admin dashboards.
type WSEvent struct {
	Type            string `json:"type"`
	ReservationID   int64  `json:"reservation_id"`
	ReservationCode string `json:"reservation_code,omitempty"`
	Status          string `json:"status,omitempty"`
	Payload         any    `json:"payload,omitempty"`
}

type connection struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans reservation events out to every connected dashboard.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]bool
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*connection]bool)}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		delete(h.connections, c)
		close(c.send)
	}
}

// Broadcast sends an event to every connection; slow clients are dropped.
func (h *Hub) Broadcast(event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ServeWS upgrades the request and keeps the connection registered until
// the client goes away.
func (h *Hub) ServeWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("level=error msg=websocket upgrade failed err=%v", err)
		return
	}

	conn := &connection{conn: ws, send: make(chan []byte, 64)}
	h.register(conn)

	go h.writeLoop(conn)
	go h.readLoop(conn)
}

func (h *Hub) writeLoop(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readLoop(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// the dashboard never sends anything meaningful; we read only to
		// notice the close
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
