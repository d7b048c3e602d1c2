// internal/api/websocket.go
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/fitstack/exertrack/internal/models"
	"github.com/fitstack/exertrack/internal/utils"
)

const writeTimeout = 5 * time.Second

// updateMessage is the payload pushed to connected clients
type updateMessage struct {
	Type string           `json:"type"`
	Data *models.Document `json:"data"`
}

// UpdateHub pushes the fresh document to connected clients after every
// successful mutation, so open pages refresh without polling
type UpdateHub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

// NewUpdateHub creates an update hub
func NewUpdateHub() *UpdateHub {
	return &UpdateHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleUpdates upgrades the connection and keeps it registered until the
// client disconnects
func (h *UpdateHub) HandleUpdates(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.GetLogger().Warnf("websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go h.readLoop(conn)
}

// readLoop drains inbound frames; clients only listen, so the first read
// error means the connection is gone
func (h *UpdateHub) readLoop(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *UpdateHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// BroadcastDocument sends the document to every connected client. Clients
// that cannot be written to are dropped.
func (h *UpdateHub) BroadcastDocument(doc *models.Document) {
	payload, err := json.Marshal(&updateMessage{Type: "document", Data: doc})
	if err != nil {
		utils.GetLogger().Errorf("marshaling update message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *UpdateHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
