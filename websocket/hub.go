package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/nyagah254/job_board/models"
)

// Conn is the slice of the websocket connection the hub needs to
// deliver messages and drop dead peers.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

// MessagePayload is the frame a connected client sends to deliver a
// direct message over the socket instead of the REST endpoint.
type MessagePayload struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

var clients = make(map[uuid.UUID]Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var broadcast = make(chan *models.Message, 64)

// Push hands a stored message to the hub for delivery to the recipient
// if they are connected. Offline recipients pick it up by polling.
func Push(message *models.Message) {
	select {
	case broadcast <- message:
	default:
		log.Printf("Hub queue full, dropping push for message %s", message.ID)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-broadcast:
			clientsMu.RLock()
			conn, ok := clients[message.RecipientID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(message); err != nil {
				log.Printf("Error sending message to client %s: %v", message.RecipientID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[message.RecipientID]; ok && current == conn {
					delete(clients, message.RecipientID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
