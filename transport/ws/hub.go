package ws

import (
	"context"
	"encoding/json"
	"sync"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/utils/logger"
)

// Hub tracks connected clients and the rooms they listen to. Events arrive
// over Redis pub/sub so every instance behind a load balancer sees them.
type Hub struct {
	redis *goredis.Client

	// rooms maps a room name to the clients subscribed to it
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan roomChange
	leave      chan roomChange

	mu sync.RWMutex
}

type roomChange struct {
	client *Client
	room   string
}

func NewHub(redis *goredis.Client) *Hub {
	return &Hub{
		redis:      redis,
		rooms:      map[string]map[*Client]bool{},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan roomChange),
		leave:      make(chan roomChange),
	}
}

// Run processes client lifecycle events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	logger.Info("websocket hub started")
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case change := <-h.join:
			h.joinRoom(change.client, change.room)
		case change := <-h.leave:
			h.leaveRoom(change.client, change.room)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	for _, room := range client.baseRooms() {
		h.joinRoom(client, room)
	}
	logger.Info("websocket client registered",
		zap.String("actor_id", client.ActorID),
		zap.String("role", string(client.Role)),
	)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	for room := range client.activeRooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	h.mu.Unlock()

	client.closeSend()
	logger.Info("websocket client unregistered", zap.String("actor_id", client.ActorID))
}

func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]bool{}
	}
	h.rooms[room][client] = true
	client.activeRooms[room] = true
}

func (h *Hub) leaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.activeRooms, room)
}

// ListenToRedis subscribes to the shared event channel and fans each event
// out to local room members. Returns when ctx is cancelled.
func (h *Hub) ListenToRedis(ctx context.Context) {
	pubsub := h.redis.Subscribe(ctx, model.ChatEventsChannel)
	defer pubsub.Close()

	logger.Info("websocket hub subscribed", zap.String("channel", model.ChatEventsChannel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event model.ChatEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warn("websocket hub bad event payload", zap.String("error", err.Error()))
				continue
			}
			h.fanOut(&event)
		}
	}
}

func (h *Hub) fanOut(event *model.ChatEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[event.Room]
	if !ok {
		return
	}
	for client := range members {
		// The sender already has the data from the REST response
		if client.ActorID == event.Sender {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer, drop the connection
			client.closeSend()
			delete(members, client)
			delete(client.activeRooms, event.Room)
		}
	}
}
