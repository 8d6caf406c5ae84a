package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/nakshatra/internal/scene"
	"github.com/ayusman/nakshatra/internal/state"
)

// sceneBroadcastInterval is the render feed rate (~30 Hz).
const sceneBroadcastInterval = 33 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SceneFrame is one render feed message: the interaction state and the
// smoothed pose for the current tick.
type SceneFrame struct {
	State     state.Snapshot `json:"state"`
	Pose      scene.Pose     `json:"pose"`
	Timestamp int64          `json:"timestamp"`
}

// SceneHandler broadcasts scene frames to the browser renderer via
// WebSocket. The renderer consumes the smoothed pose and zoom for scene
// placement and the gesture/focus labels for UI chrome.
type SceneHandler struct {
	state      *state.Store
	controller *scene.Controller
	clients    map[*websocket.Conn]bool
	mu         sync.RWMutex
	done       chan struct{}
	closeOnce  sync.Once
}

// NewSceneHandler creates a SceneHandler reading from the given store and
// controller once per broadcast tick.
func NewSceneHandler(st *state.Store, ctrl *scene.Controller) *SceneHandler {
	h := &SceneHandler{
		state:      st,
		controller: ctrl,
		clients:    make(map[*websocket.Conn]bool),
		done:       make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// Close stops the broadcast loop. Connected clients are torn down by their
// own ServeHTTP exits. Safe to call more than once.
func (h *SceneHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SceneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends the current scene frame to all connected clients.
func (h *SceneHandler) broadcast() {
	ticker := time.NewTicker(sceneBroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		empty := len(h.clients) == 0
		h.mu.RUnlock()
		if empty {
			continue
		}

		msg, err := json.Marshal(SceneFrame{
			State:     h.state.Snapshot(),
			Pose:      h.controller.Pose(),
			Timestamp: time.Now().UnixMilli(),
		})
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
