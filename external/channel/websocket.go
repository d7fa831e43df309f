package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lipika1080/np03frontend/internal/channel"
)

const reconnectBackoff = 500 * time.Millisecond

// envelope is the wire framing of every event in both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type WebsocketChannel struct {
	socketURL     string
	maxReconnects int

	mu        sync.Mutex
	conn      *websocket.Conn
	handlers  map[string]channel.Handler
	roomID    string
	connected bool
	closed    bool
}

func NewWebsocketChannel(socketURL string, maxReconnects int) *WebsocketChannel {
	return &WebsocketChannel{
		socketURL:     socketURL,
		maxReconnects: maxReconnects,
		handlers:      make(map[string]channel.Handler),
	}
}

func (c *WebsocketChannel) On(event string, handler channel.Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = handler
}

func (c *WebsocketChannel) Connect(ctx context.Context, roomID string) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.roomID = roomID
	c.closed = false
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect streaming channel: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()
	slog.Info("streaming channel connected", "room_id", roomID)

	go c.readLoop()
	return nil
}

func (c *WebsocketChannel) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.socketURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("room", c.roomID)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	return conn, err
}

func (c *WebsocketChannel) Send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	b, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected || c.conn == nil {
		return fmt.Errorf("streaming channel is not connected")
	}
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *WebsocketChannel) Disconnect() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.connected = false
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client disconnect"))
	return conn.Close()
}

// readLoop is the single dispatch goroutine: every inbound handler runs
// here, in receipt order.
func (c *WebsocketChannel) readLoop() {
	for {
		c.mu.Lock()
		conn := c.conn
		closed := c.closed
		c.mu.Unlock()
		if closed || conn == nil {
			return
		}

		_, msg, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed = c.closed
			c.mu.Unlock()
			if closed {
				return
			}
			slog.Warn("streaming channel read failed", "error", err, "room_id", c.roomID)
			if !c.reconnect() {
				return
			}
			continue
		}
		c.dispatch(msg)
	}
}

// reconnect redials a bounded number of times. Once exhausted the
// channel goes inert: no error is escalated, no further events arrive.
func (c *WebsocketChannel) reconnect() bool {
	for attempt := 1; attempt <= c.maxReconnects; attempt++ {
		time.Sleep(reconnectBackoff * time.Duration(attempt))

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return false
		}
		c.mu.Unlock()

		conn, err := c.dial(context.Background())
		if err != nil {
			slog.Warn("streaming channel reconnect attempt failed", "attempt", attempt, "max_attempts", c.maxReconnects, "error", err)
			continue
		}
		c.mu.Lock()
		c.conn = conn
		c.connected = true
		c.mu.Unlock()
		slog.Info("streaming channel reconnected", "attempt", attempt, "room_id", c.roomID)
		return true
	}

	c.mu.Lock()
	c.connected = false
	c.conn = nil
	c.mu.Unlock()
	slog.Error("streaming channel reconnect attempts exhausted; channel is inert", "max_attempts", c.maxReconnects, "room_id", c.roomID)
	return false
}

func (c *WebsocketChannel) dispatch(msg []byte) {
	var ev envelope
	if err := json.Unmarshal(msg, &ev); err != nil {
		slog.Warn("discarding malformed streaming event", "error", err)
		return
	}

	c.mu.Lock()
	handler := c.handlers[ev.Event]
	c.mu.Unlock()
	if handler == nil {
		slog.Debug("no handler registered for event", "event", ev.Event)
		return
	}
	handler(ev.Data)
}
