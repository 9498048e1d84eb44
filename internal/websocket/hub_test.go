package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// serverConn upgrades a loopback HTTP connection and returns the server side
// of the socket together with a cleanup func.
func serverConn(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}

	select {
	case conn := <-conns:
		return conn, func() {
			peer.Close()
			srv.Close()
		}
	case <-time.After(2 * time.Second):
		peer.Close()
		srv.Close()
		t.Fatal("no server side connection")
		return nil, nil
	}
}

func TestBroadcastDropsSlowClientSafely(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())

	conn, cleanup := serverConn(t)
	defer cleanup()

	c := &client{conn: conn, send: make(chan []byte, 1), done: make(chan struct{})}
	hub.mu.Lock()
	hub.clients[c] = struct{}{}
	hub.mu.Unlock()

	hub.broadcast([]byte(`{"n":1}`))
	// The one-slot queue is full now; this broadcast drops the client.
	hub.broadcast([]byte(`{"n":2}`))

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients after drop, got %d", got)
	}
	select {
	case <-c.done:
	default:
		t.Fatal("expected the dropped client to be signalled")
	}

	// A ping answered after the drop must still enqueue without panicking,
	// exactly as the read loop does.
	pong, _ := json.Marshal(PongResponse{Event: EventPong})
	select {
	case c.send <- pong:
	default:
	}

	// Dropping the same client again is a no-op.
	hub.mu.Lock()
	hub.removeLocked(c)
	hub.mu.Unlock()
}

func TestBroadcastDeliversToHealthyClient(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop())

	conn, cleanup := serverConn(t)
	defer cleanup()

	c := &client{conn: conn, send: make(chan []byte, 16), done: make(chan struct{})}
	hub.mu.Lock()
	hub.clients[c] = struct{}{}
	hub.mu.Unlock()

	hub.broadcast([]byte(`{"class_id":"x"}`))

	select {
	case frame := <-c.send:
		var note ScheduleNotification
		if err := json.Unmarshal(frame, &note); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if note.Event != EventSchedule {
			t.Errorf("expected %s event, got %s", EventSchedule, note.Event)
		}
	default:
		t.Fatal("expected a queued frame")
	}

	if got := hub.ClientCount(); got != 1 {
		t.Errorf("expected the client to stay registered, got %d", got)
	}
}
