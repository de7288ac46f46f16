package websocket

import (
	"context"
	"log"
	"sync"
)

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register, unregister and broadcast requests until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			close(h.done)
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register adds a client to the hub. It is a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for every client. It never blocks; when the queue is
// full the message is dropped and false is returned.
func (h *Hub) Broadcast(msg Message) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		log.Println("⚠️  Broadcast buffer full, dropping message")
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	log.Printf("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
		log.Printf("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

// broadcastMessage fans msg out. A client whose buffer is full is dropped.
func (h *Hub) broadcastMessage(msg Message) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range clients {
		if !c.TrySend(msg) {
			log.Printf("⚠️  client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}
}
