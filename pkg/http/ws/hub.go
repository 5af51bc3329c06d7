package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub manages WebSocket connections and broadcasts events to the members of
// a couple.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection // user id -> connection
	couples     map[string][]string    // couple key -> member user ids
	logger      zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		couples:     make(map[string][]string),
		logger:      logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds a connection for a user, replacing any existing one.
func (h *Hub) Register(userID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.connections[userID]; exists {
		old.Close()
	}
	h.connections[userID] = conn
	h.logger.Info().Str("user_id", userID).Msg("connection registered")
}

// Unregister removes a user's connection and couple memberships.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		h.logger.Info().Str("user_id", userID).Msg("connection unregistered")
	}

	for key, members := range h.couples {
		for i, id := range members {
			if id == userID {
				h.couples[key] = append(members[:i], members[i+1:]...)
				break
			}
		}
	}
}

// JoinCouple subscribes a user to a couple's event stream.
func (h *Hub) JoinCouple(coupleKey, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.couples[coupleKey]
	for _, id := range members {
		if id == userID {
			return
		}
	}
	h.couples[coupleKey] = append(members, userID)
}

// BroadcastToCouple sends a message to every connected member of a couple.
// Disconnected members are skipped silently.
func (h *Hub) BroadcastToCouple(coupleKey string, msg Message) {
	h.mu.RLock()
	members := append([]string(nil), h.couples[coupleKey]...)
	h.mu.RUnlock()

	for _, userID := range members {
		if err := h.SendToUser(userID, msg); err != nil && err != ErrConnectionNotFound {
			h.logger.Warn().Err(err).Str("user_id", userID).Msg("couple broadcast send failed")
		}
	}
}

// SendToUser delivers a message to a specific user.
func (h *Hub) SendToUser(userID string, msg Message) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return ErrConnectionNotFound
	}
	return conn.Send(msg)
}

// Connection represents a WebSocket connection with a buffered send queue.
type Connection struct {
	conn   *websocket.Conn
	sendCh chan Message
	mu     sync.Mutex
	closed bool
	logger zerolog.Logger
}

// NewConnection wraps a WebSocket connection.
func NewConnection(conn *websocket.Conn, logger zerolog.Logger) *Connection {
	return &Connection{
		conn:   conn,
		sendCh: make(chan Message, 64),
		logger: logger,
	}
}

// Send queues a message for delivery.
func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close shuts down the connection.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.sendCh)
	c.conn.Close()
}

// WritePump drains the send queue onto the socket.
func (c *Connection) WritePump() {
	defer c.conn.Close()

	for msg := range c.sendCh {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Warn().Err(err).Msg("write error")
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump receives messages and calls the handler until the socket closes.
func (c *Connection) ReadPump(handler func(Message) error) {
	defer c.conn.Close()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("read error")
			}
			break
		}
		if err := handler(msg); err != nil {
			c.logger.Warn().Err(err).Msg("message handler error")
		}
	}
}

var (
	ErrConnectionNotFound = &Error{Code: "connection_not_found", Message: "User connection not found"}
	ErrConnectionClosed   = &Error{Code: "connection_closed", Message: "Connection is closed"}
	ErrSendQueueFull      = &Error{Code: "send_queue_full", Message: "Send queue is full"}
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
