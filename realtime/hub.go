package realtime

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Conn is the slice of a websocket connection the hub writes to. Connections
// are not safe for concurrent writes, so once a client is registered every
// outbound frame must go through the hub.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	UserID uuid.UUID
	Conn   Conn
}

// Event is one notification fanned out to connected websocket clients. The
// sender resolves recipients up front; the hub only delivers.
type Event struct {
	Recipients []uuid.UUID
	Name       string
	Payload    interface{}
}

type eventEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

var clients = make(map[uuid.UUID]Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *Event, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
			log.Printf("Websocket client registered: %s", client.UserID)
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
			log.Printf("Websocket client unregistered: %s", client.UserID)
		case event := <-Broadcast:
			deliver(event)
		}
	}
}

// deliver writes the event to every connected recipient. Failed connections
// are dropped; delivery is best effort and never reported back to the sender.
func deliver(event *Event) {
	envelope := eventEnvelope{Event: event.Name, Data: event.Payload}

	var dead []uuid.UUID
	clientsMu.RLock()
	for _, recipient := range event.Recipients {
		conn, ok := clients[recipient]
		if !ok {
			continue
		}
		if err := conn.WriteJSON(envelope); err != nil {
			log.Printf("Error delivering %s to client %s: %v", event.Name, recipient, err)
			conn.Close()
			dead = append(dead, recipient)
		}
	}
	clientsMu.RUnlock()

	if len(dead) > 0 {
		clientsMu.Lock()
		for _, id := range dead {
			delete(clients, id)
		}
		clientsMu.Unlock()
	}
}

// Notify queues an event without blocking the caller; if the hub is saturated
// the event is dropped and logged.
func Notify(name string, payload interface{}, recipients ...uuid.UUID) {
	event := &Event{Recipients: recipients, Name: name, Payload: payload}
	select {
	case Broadcast <- event:
	default:
		log.Printf("⚠️ Realtime hub saturated, dropping %s event", name)
	}
}
