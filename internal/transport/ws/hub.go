package ws

import (
	"encoding/json"
	"log"
	"sync"

	"worksafe/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgNotification MessageType = "notification"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages member notification streams. One member can hold several
// connections (multiple dashboard tabs).
type Hub struct {
	memberConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *memberMessage
}

// Connection represents one WebSocket connection
type Connection struct {
	TenantID string
	MemberID string
	Send     chan []byte
	Hub      *Hub
}

type memberMessage struct {
	memberID string
	message  *Message
}

// NewHub creates a new notification hub
func NewHub() *Hub {
	h := &Hub{
		memberConns: make(map[string]map[*Connection]struct{}),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *memberMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.memberConns[conn.MemberID] == nil {
				h.memberConns[conn.MemberID] = make(map[*Connection]struct{})
			}
			h.memberConns[conn.MemberID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("ws: member %s connected", conn.MemberID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.memberConns[conn.MemberID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.memberConns, conn.MemberID)
					}
					log.Printf("ws: member %s disconnected", conn.MemberID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.message)
			for conn := range h.memberConns[msg.memberID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyMember implements service.Broadcaster. It pushes a notification to
// every open connection of the member; members without a connection simply
// miss the live push and read the stored notification later.
func (h *Hub) NotifyMember(memberID string, n *model.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("ws: marshal notification: %v", err)
		return
	}
	select {
	case h.broadcast <- &memberMessage{
		memberID: memberID,
		message:  &Message{Type: MsgNotification, Payload: payload},
	}:
	default:
		log.Printf("ws: broadcast buffer full, dropping notification for member %s", memberID)
	}
}

// Register adds a connection to the hub
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}
