// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024

	sendBuffer = 256

	// maxSubscriptions bounds per-client filter state.
	maxSubscriptions = 100
)

// clientIDCounter orders clients for delivery.
var clientIDCounter atomic.Uint64

// Client is one websocket connection and its subscriptions.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	mu     sync.Mutex
	subs   map[Subscription]struct{}
	closed bool
}

// NewClient creates a client with no subscriptions.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBuffer),
		subs: make(map[Subscription]struct{}),
	}
}

// ID returns the client's id.
func (c *Client) ID() uint64 {
	return c.id
}

// Subscriptions returns the client's current subscriptions.
func (c *Client) Subscriptions() []Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Subscription, 0, len(c.subs))
	for s := range c.subs {
		out = append(out, s)
	}
	return out
}

func (c *Client) wants(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for s := range c.subs {
		if s.Matches(ev) {
			return true
		}
	}
	return false
}

// trySend queues msg without blocking. It fails when the buffer is full or
// the client has been closed.
func (c *Client) trySend(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel once; writePump then closes the socket.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// handle applies one client frame.
func (c *Client) handle(data []byte) {
	var in inbound
	if err := json.Unmarshal(data, &in); err != nil {
		c.replyError("malformed message")
		return
	}

	switch in.Type {
	case MessageTypePing:
		c.trySend(Message{Type: MessageTypePong})

	case MessageTypeSubscribe, MessageTypeUnsubscribe:
		var sub Subscription
		if len(in.Data) == 0 || json.Unmarshal(in.Data, &sub) != nil {
			c.replyError("subscription data is required")
			return
		}
		if err := sub.Validate(); err != nil {
			c.replyError(err.Error())
			return
		}
		if sub.Topic != TopicUserActivity {
			sub.UserID = ""
		}

		c.mu.Lock()
		if in.Type == MessageTypeSubscribe {
			if _, ok := c.subs[sub]; !ok && len(c.subs) >= maxSubscriptions {
				c.mu.Unlock()
				c.replyError("too many subscriptions")
				return
			}
			c.subs[sub] = struct{}{}
		} else {
			delete(c.subs, sub)
		}
		c.mu.Unlock()

		reply := MessageTypeSubscribed
		if in.Type == MessageTypeUnsubscribe {
			reply = MessageTypeUnsubscribed
		}
		c.trySend(Message{Type: reply, Data: sub})

	default:
		c.replyError("unknown message type " + in.Type)
	}
}

func (c *Client) replyError(msg string) {
	metrics.WSErrors.WithLabelValues("bad_request").Inc()
	c.trySend(Message{Type: MessageTypeError, Data: errorData{Message: msg}})
}

// readPump reads client frames until the connection fails, then unregisters.
func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.WSErrors.WithLabelValues("unexpected_close").Inc()
				logging.Error().Err(err).Uint64("client_id", c.id).Msg("unexpected websocket close error")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()
		c.handle(data)
	}
}

// writePump writes queued messages and periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := MarshalMessage(message)
			if err != nil {
				logging.Error().Err(err).Str("type", message.Type).Msg("failed to encode websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start runs the client's pumps. Register the client with the hub first.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
