package main

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// reloadMessage is sent to every connected page after a successful rebuild.
const reloadMessage = "reload"

// defaultWriteWait bounds a write to one page.
const defaultWriteWait = 5 * time.Second

// reloadHub tracks the pages connected to /livereload.
type reloadHub struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	// onChange, if set, is called with the client count after it changes.
	onChange  func(clients int)
	writeWait time.Duration

	// writeMu serializes writers; mu only guards conns.
	writeMu sync.Mutex
	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
}

func newReloadHub(log *slog.Logger) *reloadHub {
	return &reloadHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log:       log,
		writeWait: defaultWriteWait,
		conns:     make(map[*websocket.Conn]struct{}),
	}
}

func (h *reloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("livereload upgrade failed", "err", err)
		return
	}
	h.add(conn)
	go h.readLoop(conn)
}

// readLoop discards client messages until the connection drops.
func (h *reloadHub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(conn)
}

func (h *reloadHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	h.changed(n)
}

func (h *reloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	n := len(h.conns)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
		h.changed(n)
	}
}

func (h *reloadHub) changed(n int) {
	if h.onChange != nil {
		h.onChange(n)
	}
}

func (h *reloadHub) clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *reloadHub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	return conns
}

// broadcast sends msg to every client and returns how many received it.
// Clients whose write fails or outlasts writeWait are dropped.
func (h *reloadHub) broadcast(msg string) int {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	sent := 0
	for _, conn := range h.snapshot() {
		_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			h.log.Debug("dropping livereload client", "err", err)
			h.remove(conn)
			continue
		}
		sent++
	}
	return sent
}

// closeAll disconnects every client.
func (h *reloadHub) closeAll() {
	for _, conn := range h.snapshot() {
		h.remove(conn)
	}
}
