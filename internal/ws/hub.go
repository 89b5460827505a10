package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event is one audit notification pushed to feed subscribers after a
// mutation commits.
type Event struct {
	Type     string `json:"type"`
	Entity   string `json:"entity"`
	Action   string `json:"action"`
	EntityID string `json:"entityId"`
	Revision int64  `json:"revision"`
	Actor    string `json:"actor"`
}

// Hub fans committed audit events out to connected websocket clients.
type Hub struct {
	clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	events     chan Event
	mutex      sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		events:     make(chan Event, 64),
		log:        log,
	}
}

// Publish queues an event without blocking; a saturated feed drops the
// event rather than delaying the mutation response.
func (h *Hub) Publish(e Event) {
	select {
	case h.events <- e:
	default:
		h.log.Warn("audit feed saturated, dropping event",
			zap.String("entity", e.Entity),
			zap.String("action", e.Action))
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			h.log.Info("audit feed client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case event := <-h.events:
			message, err := json.Marshal(event)
			if err != nil {
				h.log.Error("marshaling audit event", zap.Error(err))
				continue
			}
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
