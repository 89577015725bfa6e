package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"vc-copilot-be/internal/dto"
	"vc-copilot-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: FounderID -> List of Clients (multi-device)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.FounderID] = append(h.clients[client.FounderID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"founder_id": client.FounderID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.FounderID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.FounderID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.FounderID]) == 0 {
					delete(h.clients, client.FounderID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"founder_id": client.FounderID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send pushes a notification to one founder's connections, on this instance
// and, via Redis, on every other instance.
func (h *Hub) Send(founderID string, notification dto.NotificationMessage) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})

	// With Redis every instance, this one included, delivers from the
	// cluster channel; sending locally too would duplicate the message.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_founder_id": founderID,
			"message":           data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
		return
	}

	h.mu.RLock()
	clients, localFound := h.clients[founderID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"founder_id": founderID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to one channel carrying {target_founder_id, data}
	// and deliver to whatever connections they hold locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetFounderID string          `json:"target_founder_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[payload.TargetFounderID]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
