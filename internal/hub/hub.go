package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// TopicAll receives every event regardless of its topic.
const TopicAll = "all"

// Event represents a catalog change sent to subscribed clients.
type Event struct {
	Type    string      `json:"type"`
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// Client is the channel an SSE handler listens to.
type Client chan []byte

// Hub fans events out to the clients subscribed to their topic.
type Hub struct {
	topics map[string]map[Client]bool
	mu     sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[Client]bool),
	}
}

// Subscribe adds a client to a topic.
func (h *Hub) Subscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client]bool)
	}
	h.topics[topic][client] = true
}

// Unsubscribe removes a client from a topic and closes its channel.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
}

// Subscribers counts the clients of a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast sends an event to the clients of its topic and of TopicAll.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.topics[event.Topic]) == 0 && len(h.topics[TopicAll]) == 0 {
		return
	}
	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("Warning: could not encode %s event: %v", event.Type, err)
		return
	}

	topics := []string{event.Topic}
	if event.Topic != TopicAll {
		topics = append(topics, TopicAll)
	}
	for _, topic := range topics {
		for client := range h.topics[topic] {
			// Slow clients miss events rather than block the writer.
			select {
			case client <- messageBytes:
			default:
			}
		}
	}
}
