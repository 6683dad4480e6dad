package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Channel names. Auction and treasury snapshots fan out on fixed channels;
// position updates fan out per owner.
const (
	ChannelAuctions = "auctions"
	ChannelTreasury = "treasury"

	positionChannelPrefix = "positions:"
)

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by channel
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	// Register/unregister requests
	register   chan *Client
	unregister chan *Client

	// Channel subscription requests
	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Latest snapshot per channel, rebroadcast on the snapshot interval
	snapshots map[string]interface{}

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Configuration
	config *HubConfig
}

// HubConfig contains hub configuration
type HubConfig struct {
	// How often buffered snapshots are pushed to subscribers
	SnapshotInterval time.Duration

	// Connection limits
	MaxSubscriptions int

	// Rate limiting
	MessageRateLimit int // Messages per second per client
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		SnapshotInterval: 500 * time.Millisecond,
		MaxSubscriptions: 50,
		MessageRateLimit: 100,
	}
}

// SubscriptionRequest represents a subscription request
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:     make(map[*Client]bool),
		channels:    make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *SubscriptionRequest, 256),
		unsubscribe: make(chan *SubscriptionRequest, 256),
		snapshots:   make(map[string]interface{}),
		config:      config,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	snapshotTicker := time.NewTicker(h.config.SnapshotInterval)
	defer snapshotTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case <-snapshotTicker.C:
			h.broadcastSnapshots()
		}
	}
}

// registerClient adds a new client
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
}

// unregisterClient removes a client
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		for channel, clients := range h.channels {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}

		close(client.send)
	}
}

// handleSubscription handles a subscription request
func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
	}
	data, _ := json.Marshal(confirmation)
	client.Send(data)

	// New subscribers get the latest snapshot immediately
	if snapshot, ok := h.snapshots[channel]; ok {
		msg := &WSMessage{
			Type:    "snapshot",
			Channel: channel,
			Data:    snapshot,
		}
		if data, err := json.Marshal(msg); err == nil {
			client.Send(data)
		}
	}
}

// handleUnsubscription handles an unsubscription request
func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
	}
	data, _ := json.Marshal(confirmation)
	client.Send(data)
}

// BroadcastToChannel sends a message to all clients subscribed to a channel
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Make a copy of clients to avoid holding lock during send
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	for _, client := range clientList {
		client.Send(data)
	}
}

// ============ Channel-specific broadcasts ============

// UpdateSnapshot buffers the latest state for a channel. Subscribers receive
// it on the next snapshot tick, and immediately on subscribing.
func (h *Hub) UpdateSnapshot(channel string, data interface{}) {
	h.mu.Lock()
	h.snapshots[channel] = data
	h.mu.Unlock()
}

// BroadcastPosition pushes a position update to the owner's channel
func (h *Hub) BroadcastPosition(owner string, position interface{}) {
	channel := positionChannelPrefix + owner
	h.BroadcastToChannel(channel, &WSMessage{
		Type:    "position",
		Channel: channel,
		Data:    position,
	})
}

// broadcastSnapshots pushes all buffered snapshots to their subscribers
func (h *Hub) broadcastSnapshots() {
	h.mu.RLock()
	snapshots := make(map[string]interface{}, len(h.snapshots))
	for channel, data := range h.snapshots {
		snapshots[channel] = data
	}
	h.mu.RUnlock()

	for channel, data := range snapshots {
		h.BroadcastToChannel(channel, &WSMessage{
			Type:    "snapshot",
			Channel: channel,
			Data:    data,
		})
	}
}

// ============ Message Types ============

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelClientCount returns the number of clients in a channel
func (h *Hub) GetChannelClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		return len(clients)
	}
	return 0
}

// ServeWS handles WebSocket upgrade requests
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	ip := getClientIPFromRequest(r)

	client := NewClient(h, conn, clientID, ip)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Helper function to get client IP
func getClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
