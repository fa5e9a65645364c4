// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package websocket

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/metrics"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// DefaultBroadcastQueue is the event buffer used when none is configured.
const DefaultBroadcastQueue = 256

// Hub tracks connected clients and routes events to their subscriptions.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	// done is closed when RunWithContext returns; a later run replaces it.
	done    chan struct{}
	stopped bool
}

// NewHub creates a hub whose event queue holds queue events.
func NewHub(queue int) *Hub {
	if queue <= 0 {
		queue = DefaultBroadcastQueue
	}
	return &Hub{
		broadcast:  make(chan Event, queue),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Done is closed once the current run of the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.done
}

// RegisterClient hands client to the running hub. It reports false, without
// blocking, once the hub has stopped.
func (h *Hub) RegisterClient(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.Done():
		return false
	}
}

// UnregisterClient removes client. It returns immediately once the hub has
// stopped, since shutdown already closed every client.
func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.Done():
	}
}

func (h *Hub) begin() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		h.done = make(chan struct{})
		h.stopped = false
	}
}

func (h *Hub) finish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		close(h.done)
		h.stopped = true
	}
}

// RunWithContext processes registrations and events until ctx is done, then
// closes every client and returns ctx.Err().
//
// Shutdown is checked first and lifecycle events before broadcasts, so a
// client registered before an event is published receives it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.begin()
	defer h.finish()

	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Inc()
	logging.Info().Uint64("client_id", client.id).Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		client.closeSend()
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		metrics.WSConnections.Dec()
		logging.Info().Uint64("client_id", client.id).Int("total_clients", n).Msg("websocket client disconnected")
	}
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	n := h.GetClientCount()
	h.closeAllClients()
	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", n).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// sortedClients returns clients in id order. Caller holds mu.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	slices.SortFunc(clients, func(a, b *Client) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return clients
}

// deliver sends ev to every subscribed client. Clients whose buffer is full
// are disconnected.
func (h *Hub) deliver(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := Message{Type: ev.Topic, Data: ev.Data}
	var slow []*Client
	for _, c := range h.sortedClients() {
		if !c.wants(ev) {
			continue
		}
		if c.trySend(msg) {
			metrics.WSMessagesSent.Inc()
			continue
		}
		slow = append(slow, c)
	}
	for _, c := range slow {
		c.closeSend()
		delete(h.clients, c)
		metrics.WSConnections.Dec()
		metrics.WSErrors.WithLabelValues("slow_client").Inc()
		logging.Warn().Uint64("client_id", c.id).Msg("websocket client too slow, disconnected")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.sortedClients() {
		c.closeSend()
		delete(h.clients, c)
		metrics.WSConnections.Dec()
	}
}

// Publish queues ev for delivery. A full queue drops the event.
func (h *Hub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		metrics.WSErrors.WithLabelValues("queue_full").Inc()
		logging.Warn().Str("topic", ev.Topic).Msg("broadcast channel full, dropping event")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
