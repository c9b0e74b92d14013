package core

import (
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gorilla/websocket"
)

const ReloadPath = "/__greetsite_reload"

const (
	MessageReload = "reload"
	MessageCSS    = "css"
)

type LiveReloaderInterface interface {
	Notify(changed []string)
	Handler(http.ResponseWriter, *http.Request)
}

// LiveReloader pushes change notices to the dev-mode browser sockets.
type LiveReloader struct {
	clients  map[*websocket.Conn]bool
	lock     sync.Mutex
	upgrader websocket.Upgrader
}

var NewLiveReloader = func() LiveReloaderInterface {
	return &LiveReloader{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (lr *LiveReloader) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	lr.lock.Lock()
	lr.clients[conn] = true
	lr.lock.Unlock()

	go lr.drain(conn)
}

// drain discards client frames until the socket closes, then forgets it.
func (lr *LiveReloader) drain(conn *websocket.Conn) {
	defer lr.drop(conn)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (lr *LiveReloader) drop(conn *websocket.Conn) {
	lr.lock.Lock()
	delete(lr.clients, conn)
	lr.lock.Unlock()
	conn.Close()
}

// Notify tells every client what changed: stylesheet-only bursts are
// hot-swapped, anything else reloads the page.
func (lr *LiveReloader) Notify(changed []string) {
	lr.broadcast(reloadMessage(changed))
}

func (lr *LiveReloader) broadcast(msg string) {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	for conn := range lr.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			conn.Close()
			delete(lr.clients, conn)
		}
	}
}

func (lr *LiveReloader) ClientCount() int {
	lr.lock.Lock()
	defer lr.lock.Unlock()
	return len(lr.clients)
}

func reloadMessage(changed []string) string {
	if len(changed) == 0 {
		return MessageReload
	}
	for _, path := range changed {
		if filepath.Ext(path) != ".css" {
			return MessageReload
		}
	}
	return MessageCSS
}
