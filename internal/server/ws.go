package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/dinojump/internal/app"
	"github.com/ayusman/dinojump/internal/detector"
	"github.com/gorilla/websocket"
)

const (
	broadcastInterval = 66 * time.Millisecond // ~15 FPS
	writeWait         = 2 * time.Second
	clientBuffer      = 4
	maxMessageSize    = 64 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Message types on /api/ws.
const (
	MessageLandmarks = "landmarks"
	MessageJump      = "jump"
	MessageStart     = "start"
	MessageSnapshot  = "snapshot"
)

// InboundMessage is sent by the browser. Landmark messages carry the hands
// from an in-browser tracker; an empty hands list means no hand in frame.
type InboundMessage struct {
	Type  string                   `json:"type"`
	Hands []detector.HandLandmarks `json:"hands,omitempty"`
}

// OutboundMessage is broadcast to every client.
type OutboundMessage struct {
	Type      string       `json:"type"`
	Timestamp int64        `json:"timestamp"`
	Snapshot  app.Snapshot `json:"snapshot"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub accepts websocket clients, feeds their landmarks to the game and
// broadcasts game snapshots.
type Hub struct {
	app     *app.App
	clients map[*client]bool
	mu      sync.RWMutex
}

// NewHub creates a Hub for the given app. Call Run to start broadcasting.
func NewHub(a *app.App) *Hub {
	return &Hub{
		app:     a,
		clients: make(map[*client]bool),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.writePump(c)
	h.readPump(c)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	close(c.send)
}

// readPump applies inbound messages until the connection fails.
func (h *Hub) readPump(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("websocket: invalid message: %v", err)
			continue
		}
		h.handle(msg)
	}
}

func (h *Hub) handle(msg InboundMessage) {
	switch msg.Type {
	case MessageLandmarks:
		h.app.Feed().Push(msg.Hands)
	case MessageJump:
		h.app.RequestJump()
	case MessageStart:
		h.app.NewGame()
	default:
		log.Printf("websocket: unknown message type %q", msg.Type)
	}
}

// writePump is the only writer on the connection.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			// Unblock readPump so the client is unregistered.
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Run broadcasts snapshots until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		h.broadcast()
	}
}

// broadcast sends the current snapshot to all connected clients. Slow
// clients miss frames instead of stalling the others.
func (h *Hub) broadcast() {
	if h.Clients() == 0 {
		return
	}

	msg, err := json.Marshal(OutboundMessage{
		Type:      MessageSnapshot,
		Timestamp: time.Now().UnixMilli(),
		Snapshot:  h.app.Snapshot(),
	})
	if err != nil {
		log.Printf("websocket: encode snapshot: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}
