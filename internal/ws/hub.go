package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"go-price-checker/internal/model"

	"github.com/gofiber/contrib/websocket"
)

const broadcastBuffer = 32

// Hub fans catalog events out to every connected kiosk
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
	}
}

// Publish queues an event without blocking; events are dropped when the
// buffer is full since kiosks only need the latest catalog state.
func (h *Hub) Publish(event model.CatalogEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode catalog event", "error", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		slog.Warn("dropping catalog event, broadcast buffer full", "action", event.Action)
	}
}

// ClientCount returns the number of connected kiosks
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			slog.Info("kiosk connected", "clients", h.ClientCount())

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
