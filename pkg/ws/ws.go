// Package ws pushes live storefront events to connected sellers over
// WebSocket using gorilla/websocket.
//
// A seller dashboard opens /api/ws/seller with its bearer token; the hub
// keys the connection by seller profile ID so review notifications reach
// only the shop they belong to:
//
//	var SellerHub = ws.NewHub()
//	go SellerHub.Run()
//
//	// from a queue job:
//	SellerHub.Notify(sellerID, ws.M{"event": "review.created", "product": slug})
package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shashiranjanraj/crafthaven/pkg/logger"
)

// M is a shorthand for notification payload maps.
type M = map[string]interface{}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512 KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client represents a single connected WebSocket client.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	sellerID uint // 0 = not a seller connection
}

// readPump pumps messages from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			break
		}
		// Seller connections are push-only; inbound frames are drained
		// so ping/pong keeps working but payloads are ignored.
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
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

// ─── Hub ──────────────────────────────────────────────────────────────────────

// notification is a payload addressed to one seller's connections.
type notification struct {
	sellerID uint
	data     []byte
}

// Hub maintains all active WebSocket connections, grouped by seller ID.
type Hub struct {
	clients    map[*Client]bool
	bySeller   map[uint]map[*Client]bool
	broadcast  chan []byte
	notify     chan notification
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		bySeller:   make(map[uint]map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		notify:     make(chan notification, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if client.sellerID != 0 {
				if h.bySeller[client.sellerID] == nil {
					h.bySeller[client.sellerID] = make(map[*Client]bool)
				}
				h.bySeller[client.sellerID][client] = true
			}
			logger.Info("ws: client connected", "seller_id", client.sellerID, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				logger.Info("ws: client disconnected", "total", len(h.clients))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				h.push(client, msg)
			}

		case n := <-h.notify:
			for client := range h.bySeller[n.sellerID] {
				h.push(client, n.data)
			}
		}
	}
}

func (h *Hub) push(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		// Slow consumer, drop the connection.
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	if set, ok := h.bySeller[client.sellerID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.bySeller, client.sellerID)
		}
	}
	close(client.send)
}

// Notify sends a JSON payload to every connection of one seller.
// Safe to call from any goroutine; silently drops if the hub is saturated.
func (h *Hub) Notify(sellerID uint, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("ws: marshal notification", "error", err)
		return
	}
	select {
	case h.notify <- notification{sellerID: sellerID, data: data}:
	default:
		logger.Warn("ws: notify queue full, dropping", "seller_id", sellerID)
	}
}

// Broadcast sends raw bytes to every connected client.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
	}
}

// ClientCount returns the number of currently connected clients.
// Only safe to call from tests or the hub goroutine.
func (h *Hub) ClientCount() int { return len(h.clients) }

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades an HTTP connection to a WebSocket and registers the
// resulting client with the given hub under sellerID.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, sellerID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), sellerID: sellerID}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
