package live

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// EventNewSponsor is pushed to every connected page when the ledger changes.
const EventNewSponsor = "new_sponsor"

type NewSponsorPayload struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	// GoalTotal is null when no campaign is active.
	GoalTotal *int64 `json:"goal_total"`
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Broadcaster is the side of the hub the webhook reconciler sees.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// Hub fans messages out to connected browsers. The Run goroutine owns the
// client set; registration and broadcasting go through channels so no lock is
// shared with request handlers.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]bool
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]bool),
		logger:     logger.With().Str("component", "live").Logger(),
	}
}

// Run owns the client set; call it once from main.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; drop it rather than stall the rest.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast is fire-and-forget: marshal problems are logged and swallowed,
// and a full queue drops the message instead of blocking the caller.
func (h *Hub) Broadcast(event string, data any) {
	msg, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Warn().Err(err).Str("event", event).Msg("marshal broadcast payload")
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("event", event).Msg("broadcast queue full, dropping event")
	}
}
