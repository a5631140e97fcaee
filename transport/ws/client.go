package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/utils/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is one websocket connection bound to an authenticated actor.
type Client struct {
	hub     *Hub
	ActorID string
	Role    constant.ActorRole

	conn        *websocket.Conn
	send        chan []byte
	activeRooms map[string]bool

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, actorID string, role constant.ActorRole) *Client {
	return &Client{
		hub:         hub,
		ActorID:     actorID,
		Role:        role,
		conn:        conn,
		send:        make(chan []byte, 256),
		activeRooms: map[string]bool{},
	}
}

// baseRooms are joined automatically on connect. Admins also listen on the
// shared inbox room so a new waiting thread reaches everyone on shift.
func (c *Client) baseRooms() []string {
	if c.Role == constant.RoleAdmin {
		return []string{model.RoomAdmin(c.ActorID), model.RoomAllAdmins}
	}
	return []string{model.RoomUser(c.ActorID)}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// clientCommand is what a connected client may send upstream. Messages are
// posted over REST; the socket only manages room membership and typing.
type clientCommand struct {
	Action         string `json:"action"` // join, leave, typing
	ConversationID string `json:"conversation_id"`
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error", zap.String("error", err.Error()))
			}
			break
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			logger.Warn("websocket bad client command", zap.String("error", err.Error()))
			continue
		}
		if cmd.ConversationID == "" {
			continue
		}

		room := model.RoomConversation(cmd.ConversationID)
		switch cmd.Action {
		case "join":
			c.hub.join <- roomChange{client: c, room: room}
		case "leave":
			c.hub.leave <- roomChange{client: c, room: room}
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Drain anything already queued into the same frame
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
