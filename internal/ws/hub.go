package ws

import (
	"encoding/json"
	"log/slog"
)

// Event is a single entity-mutation notification pushed to admin clients.
type Event struct {
	Type string `json:"type"` // "school.created", "student.moved", ...
	Data any    `json:"data"`
}

// Hub maintains the set of connected admin clients and fans out entity
// mutation events published by the registries.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish queues an event for every connected client. Safe to call from any
// goroutine; drops the event when the hub's buffer is full rather than
// blocking a registry operation.
func (h *Hub) Publish(event string, data any) {
	select {
	case h.broadcast <- &Event{Type: event, Data: data}:
	default:
		if h.log != nil {
			h.log.Warn("event feed full, dropping event", slog.String("type", event))
		}
	}
}
