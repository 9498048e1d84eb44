package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Hub relays schedule events from the Redis channel to every connected
// client. One subscription serves all connections; each client gets its own
// buffered send queue so a slow reader cannot stall the rest.
type Hub struct {
	rdb *redis.Client
	log zerolog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// client's send queue is written by the hub and the read loop and drained
// by Serve. It is never closed; a dropped client is signalled through done
// so late enqueues stay safe.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// NewHub creates a new Hub.
func NewHub(rdb *redis.Client, log zerolog.Logger) *Hub {
	return &Hub{
		rdb:     rdb,
		log:     log.With().Str("component", "schedule_hub").Logger(),
		clients: make(map[*client]struct{}),
	}
}

// Run subscribes to the schedule event channel and fans messages out until
// the context is cancelled. Intended to run as a goroutine from the
// composition root.
func (h *Hub) Run(ctx context.Context) {
	sub := h.rdb.Subscribe(ctx, config.CacheKey.ScheduleEventChannel())
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(payload []byte) {
	frame, err := json.Marshal(ScheduleNotification{
		Event:   EventSchedule,
		Payload: json.RawMessage(payload),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			// Queue full, drop the client rather than block the hub.
			h.removeLocked(c)
		}
	}
}

// Serve registers the connection and pumps events to it until the client
// disconnects. It blocks, so call it from the upgrade handler's goroutine.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, 16), done: make(chan struct{})}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
	}()

	go h.readLoop(c)

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case frame := <-c.send:
			if err := WriteRaw(conn, frame); err != nil {
				return
			}
		}
	}
}

// readLoop answers pings and detects disconnects. Any read error drops the
// client, which unblocks Serve.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(c)
		h.mu.Unlock()
	}()

	pong, _ := json.Marshal(PongResponse{Event: EventPong})
	for {
		var env RequestEnvelope
		if err := ReadJSON(c.conn, &env); err != nil {
			return
		}
		if env.Action == ActionPing {
			// Enqueue instead of writing directly; Serve owns the write side.
			select {
			case c.send <- pong:
			default:
			}
		}
	}
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.done)
	_ = c.conn.Close()
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
