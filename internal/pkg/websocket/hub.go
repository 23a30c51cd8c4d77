package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and broadcasts messages to the
// clients of each tribe's chat room.
type Hub struct {
	// Registered clients organized by tribe ID
	clients map[int64]map[*Client]bool

	// Channel for inbound messages from clients
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed to stop the run loop
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for message listeners
	listenersMu sync.RWMutex

	// Message listeners keyed by a registration handle
	listeners map[int64]chan *Message
	nextID    int64

	logger zerolog.Logger
}

// Message represents a chat message sent over WebSocket
type Message struct {
	ID             int64     `json:"id,omitempty"`
	TribeID        int64     `json:"tribeId"`
	SenderID       int64     `json:"senderId"`
	SenderUsername string    `json:"senderUsername,omitempty"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[int64]map[*Client]bool),
		listeners:  make(map[int64]chan *Message),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts until
// Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop shuts down the run loop and disconnects all clients
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues a message for delivery to the tribe's connected clients
func (h *Hub) Broadcast(message *Message) {
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// Listen registers a channel receiving every broadcast message. The returned
// dispose function removes the registration; callers must invoke it when done.
func (h *Hub) Listen(buffer int) (<-chan *Message, func()) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan *Message, buffer)
	h.listeners[id] = ch

	dispose := func() {
		h.listenersMu.Lock()
		defer h.listenersMu.Unlock()
		if existing, ok := h.listeners[id]; ok {
			delete(h.listeners, id)
			close(existing)
		}
	}

	return ch, dispose
}

// ClientCount returns the number of clients connected to a tribe's room
func (h *Hub) ClientCount(tribeID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[tribeID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tribeID := client.tribeID
	if _, ok := h.clients[tribeID]; !ok {
		h.clients[tribeID] = make(map[*Client]bool)
	}
	h.clients[tribeID][client] = true

	h.logger.Info().
		Int64("tribeID", tribeID).
		Int64("userID", client.userID).
		Msg("Chat client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tribeID := client.tribeID
	if _, ok := h.clients[tribeID]; ok {
		if _, ok := h.clients[tribeID][client]; ok {
			delete(h.clients[tribeID], client)
			close(client.send)

			if len(h.clients[tribeID]) == 0 {
				delete(h.clients, tribeID)
			}

			h.logger.Info().
				Int64("tribeID", tribeID).
				Int64("userID", client.userID).
				Msg("Chat client unregistered")
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.notifyListeners(message)

	h.mu.RLock()
	clients, ok := h.clients[message.TribeID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().Err(err).Int64("tribeID", message.TribeID).Msg("Failed to marshal chat message")
		return
	}

	// Collect slow clients and drop them after releasing the read lock
	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}
}

func (h *Hub) notifyListeners(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- message:
		default:
			h.logger.Warn().Msg("Skipped slow chat listener")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for tribeID, clients := range h.clients {
		for client := range clients {
			close(client.send)
			client.conn.Close()
		}
		delete(h.clients, tribeID)
	}
}
