package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageType defines the type of WebSocket message.
type MessageType string

const (
	MsgNewResponse  MessageType = "new_response"
	MsgFormDeleted  MessageType = "form_deleted"
	MsgViewerJoined MessageType = "viewer_joined"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the live-viewer connections of every form. A form owner
// watching the response dashboard holds one connection; every accepted
// submission for that form is fanned out to all of its viewers.
type Hub struct {
	// formID -> set of viewer connections
	viewers map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one viewer's WebSocket connection.
type Connection struct {
	FormID string
	HostID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to fan out to a form's viewers.
type BroadcastMessage struct {
	FormID  string
	Message *Message
}

// NewHub creates a new WebSocket hub and starts its event loop.
func NewHub() *Hub {
	h := &Hub{
		viewers:    make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.viewers[conn.FormID] == nil {
				h.viewers[conn.FormID] = make(map[*Connection]struct{})
			}
			h.viewers[conn.FormID][conn] = struct{}{}
			h.mu.Unlock()
			logrus.WithFields(logrus.Fields{
				"formId": conn.FormID,
				"hostId": conn.HostID,
			}).Debug("viewer connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.viewers[conn.FormID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.viewers, conn.FormID)
					}
				}
			}
			h.mu.Unlock()
			logrus.WithField("formId", conn.FormID).Debug("viewer disconnected")

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				logrus.WithError(err).Warn("broadcast envelope marshal failed")
				continue
			}
			h.mu.RLock()
			for conn := range h.viewers[msg.FormID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if the viewer's buffer is full.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a viewer connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a viewer connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToViewers sends a message to every viewer of a form (implements
// service.Broadcaster).
func (h *Hub) BroadcastToViewers(formID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Warn("broadcast payload marshal failed")
		return
	}
	h.broadcast <- &BroadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectForm closes every viewer connection of a form (implements
// service.Broadcaster). Used when a form is deleted.
func (h *Hub) DisconnectForm(formID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.viewers[formID] {
		close(conn.Send)
	}
	delete(h.viewers, formID)
}
