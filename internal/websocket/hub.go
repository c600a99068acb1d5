package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSubscribe   MessageType = "subscribe"
	MessageTypeUnsubscribe MessageType = "unsubscribe"
	MessageTypeEvent       MessageType = "event"
	MessageTypeError       MessageType = "error"
)

// Events pushed to subscribed admin clients.
const (
	EventMessagesIngested = "messages_ingested"
	EventActionsSuggested = "actions_suggested"
	EventDigestSent       = "digest_sent"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    MessageType `json:"type"`
	Event   string      `json:"event,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Hub maintains the set of active clients and pushes events to event
// subscribers. It satisfies the notifier contract the services layer expects.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Event subscriptions: event name -> set of clients
	subscriptions map[string]map[*Client]bool

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Subscribe to an event
	subscribe chan *subscriptionRequest

	// Unsubscribe from an event
	unsubscribeEvent chan *subscriptionRequest

	// Broadcast to event subscribers
	broadcast chan *broadcastMessage

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Logger
	logger *slog.Logger
}

type subscriptionRequest struct {
	client *Client
	event  string
}

type broadcastMessage struct {
	event   string
	message []byte
}

// NewHub creates a new Hub instance
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:          make(map[*Client]bool),
		subscriptions:    make(map[string]map[*Client]bool),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		subscribe:        make(chan *subscriptionRequest),
		unsubscribeEvent: make(chan *subscriptionRequest),
		broadcast:        make(chan *broadcastMessage, 256),
		logger:           logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client registered")
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				// Remove from all subscriptions
				for event, subscribers := range h.subscriptions {
					delete(subscribers, client)
					if len(subscribers) == 0 {
						delete(h.subscriptions, event)
					}
				}
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client unregistered")
			}

		case req := <-h.subscribe:
			h.mu.Lock()
			if h.subscriptions[req.event] == nil {
				h.subscriptions[req.event] = make(map[*Client]bool)
			}
			h.subscriptions[req.event][req.client] = true
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client subscribed to event", slog.String("event", req.event))
			}

		case req := <-h.unsubscribeEvent:
			h.mu.Lock()
			if subscribers, ok := h.subscriptions[req.event]; ok {
				delete(subscribers, req.client)
				if len(subscribers) == 0 {
					delete(h.subscriptions, req.event)
				}
			}
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Debug("client unsubscribed from event", slog.String("event", req.event))
			}

		case msg := <-h.broadcast:
			h.mu.RLock()
			subscribers := h.subscriptions[msg.event]
			for client := range subscribers {
				select {
				case client.send <- msg.message:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Subscribe subscribes a client to an event
func (h *Hub) Subscribe(client *Client, event string) {
	h.subscribe <- &subscriptionRequest{client: client, event: event}
}

// Unsubscribe unsubscribes a client from an event
func (h *Hub) Unsubscribe(client *Client, event string) {
	h.unsubscribeEvent <- &subscriptionRequest{client: client, event: event}
}

// Broadcast pushes an event with its payload to every subscribed client
func (h *Hub) Broadcast(event string, payload interface{}) {
	msg := WSMessage{
		Type:    MessageTypeEvent,
		Event:   event,
		Payload: payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to marshal broadcast message", slog.Any("error", err))
		}
		return
	}

	h.broadcast <- &broadcastMessage{
		event:   event,
		message: data,
	}
}
