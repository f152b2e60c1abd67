package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/treemap/internal/pipeline"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedBuffer is how many events a slow client may lag before events are
// dropped for it.
const feedBuffer = 16

// Feed pushes pipeline state transitions to websocket clients as JSON.
type Feed struct {
	mu      sync.Mutex
	clients map[chan pipeline.Event]struct{}
	closed  bool
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{clients: make(map[chan pipeline.Event]struct{})}
}

// Publish delivers ev to every connected client without blocking.
func (f *Feed) Publish(ev pipeline.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for ch := range f.clients {
		delete(f.clients, ch)
		close(ch)
	}
}

func (f *Feed) subscribe() (chan pipeline.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, false
	}
	ch := make(chan pipeline.Event, feedBuffer)
	f.clients[ch] = struct{}{}
	return ch, true
}

func (f *Feed) unsubscribe(ch chan pipeline.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[ch]; ok {
		delete(f.clients, ch)
		close(ch)
	}
}

// ServeHTTP upgrades the request and streams events until either side
// closes. The subscription exists before the handshake completes, so a
// client sees every event published after its dial returns.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ch, ok := f.subscribe()
	if !ok {
		http.Error(w, "feed closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.unsubscribe(ch)
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Reads only detect the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("server: websocket read: %v", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(time.Second))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				f.unsubscribe(ch)
				return
			}
		case <-done:
			f.unsubscribe(ch)
			return
		}
	}
}
