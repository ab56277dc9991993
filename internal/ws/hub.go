package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"ascend/internal/domain/event"

	"github.com/google/uuid"
)

type outbound struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans events out to the websocket connections of a single user. A user
// may hold several connections (tabs, CLI watchers).
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	publish    chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		publish:    make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run serves registrations and deliveries until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.mutex.Unlock()
			h.logger.Debug("ws connected", "user_id", client.userID, "connections", len(set))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.logger.Debug("ws disconnected", "user_id", client.userID)

		case msg := <-h.publish:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for uid, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, uid)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Publish queues an event for userID. It never blocks; when the queue is full
// the event is dropped and logged.
func (h *Hub) Publish(userID uuid.UUID, eventType string) {
	if h == nil || userID == uuid.Nil {
		return
	}
	b, err := json.Marshal(event.New(eventType, userID))
	if err != nil {
		return
	}
	select {
	case h.publish <- outbound{userID: userID, payload: b}:
	default:
		h.logger.Warn("ws publish dropped", "reason", "buffer_full", "type", eventType)
	}
}

func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
