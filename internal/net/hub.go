package net

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"RmBoard/internal/export"
	"RmBoard/internal/logging"
	"RmBoard/internal/state"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 8
)

// PageMessage carries one rendered page to preview clients.
type PageMessage struct {
	Type    string          `json:"type"` // "page"
	Seq     uint64          `json:"seq"`
	Site    string          `json:"site"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Strokes []export.Stroke `json:"strokes"`
}

// Client is one connected preview viewer. Each send queue entry is a whole
// snapshot, written out one page message at a time.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan [][]byte
}

// Hub tracks preview clients and fans page snapshots out to them.
type Hub struct {
	clock    *state.Clock
	mu       sync.RWMutex
	clients  map[*Client]bool
	snapshot [][]byte
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clock:   state.NewClock(),
		clients: make(map[*Client]bool),
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish replaces the current snapshot and sends it to every client.
func (h *Hub) Publish(pages []PageMessage) error {
	encoded := make([][]byte, 0, len(pages))
	for i := range pages {
		pages[i].Type = "page"
		pages[i].Seq = h.clock.Tick()
		pages[i].Site = h.clock.Site()
		data, err := json.Marshal(pages[i])
		if err != nil {
			return err
		}
		encoded = append(encoded, data)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshot = encoded
	for c := range h.clients {
		h.enqueue(c, encoded)
	}
	return nil
}

// Add registers a connection and queues the current snapshot for it.
func (h *Hub) Add(conn *websocket.Conn) *Client {
	c := &Client{hub: h, conn: conn, send: make(chan [][]byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = true
	if len(h.snapshot) > 0 {
		h.enqueue(c, h.snapshot)
	}
	n := len(h.clients)
	h.mu.Unlock()

	logging.PeerEvent("connected", n, "remote", conn.RemoteAddr().String())
	go c.writePump()
	go c.readPump()
	return c
}

// Remove drops a client and closes its send queue.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	logging.PeerEvent("disconnected", n, "remote", c.conn.RemoteAddr().String())
}

// enqueue must be called with h.mu held. Slow clients are dropped.
func (h *Hub) enqueue(c *Client, batch [][]byte) {
	select {
	case c.send <- batch:
	default:
		logging.Warn("preview client too slow, dropping", "remote", c.conn.RemoteAddr().String())
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump only watches for the peer going away.
func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("websocket unexpected close", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case batch, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			for _, data := range batch {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
