// Package websocket streams committed statutory component changes to connected clients.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"statutory-engine/internal/middleware"
	"statutory-engine/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
	broadcastSize  = 1024
)

// Message is the frame pushed to clients
type Message struct {
	Type string               `json:"type"`
	Data model.ComponentEvent `json:"data"`
}

type outbound struct {
	countryID uuid.UUID
	payload   []byte
}

// Client represents a single connected WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	countryID uuid.UUID // uuid.Nil receives every country
}

// Hub owns the set of clients. Only Run touches the client map.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

// NewHub creates a hub. An empty allowedOrigins accepts any origin.
func NewHub(logger *zap.Logger, allowedOrigins []string) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, broadcastSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.Named("websocket"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(allowed) == 0 || slices.Contains(allowed, origin)
	}
}

// Run starts the dispatch loop and returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Add(1)
			h.logger.Debug("client connected", zap.String("country_id", client.countryID.String()))
		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.logger.Debug("client disconnected")
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if client.countryID != uuid.Nil && client.countryID != msg.countryID {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					// slow consumer
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.count.Add(-1)
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish queues an event for delivery. It never blocks; events are dropped when the queue is full.
func (h *Hub) Publish(event model.ComponentEvent) {
	payload, err := json.Marshal(Message{Type: string(event.Type), Data: event})
	if err != nil {
		h.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- outbound{countryID: event.CountryID, payload: payload}:
	default:
		h.logger.Warn("event dropped, broadcast queue full",
			zap.String("type", string(event.Type)),
			zap.String("component_id", event.ComponentID.String()))
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// readPump keeps the connection alive and detects disconnects; clients never send data
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
	}
}

// ServeWs upgrades an authenticated request. Browsers cannot set headers on the
// handshake, so the token travels in the "token" query parameter.
// An optional country_id narrows the feed to one country.
func ServeWs(hub *Hub, auth *middleware.Authenticator, c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		hub.logger.Info("connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	_, role, err := auth.ParseToken(tokenString)
	if err != nil {
		hub.logger.Info("connection rejected: invalid token", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !middleware.HasRole(role, middleware.ReadRoles) {
		hub.logger.Info("connection rejected: inadequate permissions", zap.String("role", role))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	var countryID uuid.UUID
	if raw := c.Query("country_id"); raw != "" {
		if countryID, err = uuid.Parse(raw); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
	}

	conn, err := hub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, sendBufferSize), countryID: countryID}
	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
