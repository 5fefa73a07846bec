package feed

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/logger"
	"github.com/gocart/storefront/pkg/metrics"
)

// EventOrderPlaced is sent to a store room for every order it receives.
const EventOrderPlaced = "order.placed"

const defaultSendBuffer = 256

// Event is one message on the store feed.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type storeEvent struct {
	storeID uuid.UUID
	event   Event
}

// Options configures a Hub.
type Options struct {
	SendBuffer     int
	AllowedOrigins []string
	Metrics        *metrics.FeedMetrics
	Logger         *logger.Logger
}

// Hub fans store events out to the websocket clients of that store. Room
// membership only changes inside Run.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]struct{}
	mu    sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan storeEvent
	done       chan struct{}

	sendBuffer int
	origins    map[string]struct{}
	metrics    *metrics.FeedMetrics
	logg       *logger.Logger
}

func NewHub(opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaultSendBuffer
	}
	if opts.Logger == nil {
		opts.Logger = logger.New(logger.Options{ServiceName: "feed", Output: io.Discard})
	}
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		origins[origin] = struct{}{}
	}
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan storeEvent, opts.SendBuffer),
		done:       make(chan struct{}),
		sendBuffer: opts.SendBuffer,
		origins:    origins,
		metrics:    opts.Metrics,
		logg:       opts.Logger,
	}
}

// Run owns room state until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			room := h.rooms[client.storeID]
			if room == nil {
				room = make(map[*Client]struct{})
				h.rooms[client.storeID] = room
			}
			room[client] = struct{}{}
			h.mu.Unlock()
			h.metrics.Connected()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			message, err := json.Marshal(ev.event)
			if err != nil {
				h.logg.Error(context.Background(), "encode feed event", err)
				continue
			}
			h.mu.Lock()
			for client := range h.rooms[ev.storeID] {
				select {
				case client.send <- message:
				default:
					h.removeLocked(client)
					h.metrics.Dropped()
				}
			}
			h.mu.Unlock()
			h.metrics.Broadcast()
		}
	}
}

// removeLocked drops client from its room and closes its send channel. It is a
// no-op for clients that are already gone.
func (h *Hub) removeLocked(client *Client) {
	room, ok := h.rooms[client.storeID]
	if !ok {
		return
	}
	if _, exists := room[client]; !exists {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.storeID)
	}
	h.metrics.Disconnected()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			h.removeLocked(client)
		}
	}
}

// Publish queues event for the store's room. It never blocks: when the hub is
// stopped or its queue is full the event is dropped.
func (h *Hub) Publish(storeID uuid.UUID, event Event) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.broadcast <- storeEvent{storeID: storeID, event: event}:
	default:
		h.logg.Warn(h.logg.WithStoreID(context.Background(), storeID.String()), "feed queue full, event dropped")
	}
}

// PublishOrder announces a newly placed order to its store.
func (h *Hub) PublishOrder(order models.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		h.logg.Error(context.Background(), "encode order for feed", err)
		return
	}
	h.Publish(order.StoreID, Event{Type: EventOrderPlaced, Payload: payload})
}

// RoomSize reports how many clients are connected for storeID.
func (h *Hub) RoomSize(storeID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[storeID])
}

func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
