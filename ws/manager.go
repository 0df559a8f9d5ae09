package ws

import (
	"sync"

	"hanabi_backend/internal/logger"
)

// Event is the envelope every realtime push uses.
type Event struct {
	Event string      `json:"event"` // "notification" or "message"
	Data  interface{} `json:"data"`
}

// Manager tracks one connection per user and fans events out to them.
// It satisfies services.Broadcaster.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			// A newer connection replaces the previous one for the same user.
			if old, ok := m.clients[client.UserID]; ok {
				close(old.Send)
			}
			m.clients[client.UserID] = client
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.UserID)
			}
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID)
		}
	}
}

// PushToUser delivers an event to the user's connection if one is open.
// A user without a connection simply misses the push; the data is still
// readable through the REST API.
func (m *Manager) PushToUser(userID string, event string, payload interface{}) {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- Event{Event: event, Data: payload}:
	default:
		// Send buffer full means the reader is gone or stuck.
		go func() { m.unregister <- client }()
	}
}
