package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub menampung semua client display (kitchen, waiter, customer) dan
// menyiarkan event ke semuanya. Delivery is at-most-once: a write error
// drops the message for that client only.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> room
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// Register menambahkan connection ke set. Room is a logical grouping only
// (join-room in the old socket.io client); it is not authorization and no
// per-room filtering is applied on broadcast.
func (h *Hub) Register(conn *websocket.Conn, room string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = room
}

// Unregister melepaskan connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) OrderUpdated(kind string, order interface{}) {
	h.broadcast(Message{
		Event: EventOrderUpdated,
		Data: map[string]interface{}{
			"type":  kind,
			"order": order,
		},
	})
}

func (h *Hub) TableUpdated(tableNumber int, status string) {
	h.broadcast(Message{
		Event: EventTableUpdated,
		Data: map[string]interface{}{
			"tableNumber": tableNumber,
			"status":      status,
		},
	})
}

// ClientCount melaporkan jumlah client yang terhubung.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, room := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to client in room %s: %v", msg.Event, room, err)
			continue
		}
	}
}
