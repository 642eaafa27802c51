package live

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client is one connected live viewer
type Client struct {
	ID       string
	WheelID  uuid.UUID       // uuid.Nil watches every wheel
	Messages chan Message    // closed by the hub on unregister or shutdown
	Types    map[string]bool // nil means all message types
}

func (c *Client) wants(msg Message) bool {
	if c.WheelID != uuid.Nil && c.WheelID != msg.WheelID {
		return false
	}
	return c.Types == nil || c.Types[msg.Type]
}

// Hub manages live client connections and message fan-out
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Message
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the hub down and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.Messages)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.Messages)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.wants(msg) {
					continue
				}
				// Slow clients miss messages rather than stall everyone else
				select {
				case client.Messages <- msg:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client watching wheelID, optionally limited to the given message types
func (h *Hub) Register(wheelID uuid.UUID, types []string) *Client {
	client := &Client{
		ID:       uuid.New().String(),
		WheelID:  wheelID,
		Messages: make(chan Message, ClientMessageBuffer),
	}
	if len(types) > 0 {
		client.Types = make(map[string]bool, len(types))
		for _, t := range types {
			client.Types[t] = true
		}
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.Messages)
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues a message for every interested client
func (h *Hub) Broadcast(wheelID uuid.UUID, msgType string, payload interface{}) {
	msg := Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		WheelID:   wheelID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- msg:
	default:
		slog.Warn(LogMsgMessageDropped, "type", msgType, "wheel_id", wheelID)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats a message for an SSE stream
func FormatSSEMessage(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	out := "id: " + msg.ID + "\n"
	out += "event: " + msg.Type + "\n"
	out += "data: " + string(data) + "\n\n"

	return []byte(out), nil
}
