package model

import "encoding/json"

// ChatEventsChannel is the Redis pub/sub channel feeding the websocket hub.
const ChatEventsChannel = "chat_events"

// Chat event types mirrored by the websocket layer.
const (
	EventNewMessage          = "new-message"
	EventTyping              = "typing"
	EventConversationUpdated = "conversation-updated"
)

// ChatEvent is the fan-out unit: REST handlers publish these after a
// committed mutation so open sessions receive it without polling.
// Delivery is best-effort, at-most-once.
type ChatEvent struct {
	Type    string          `json:"type"`
	Room    string          `json:"room"`
	Sender  string          `json:"sender,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Room naming scheme shared by the hub and the publishers.
func RoomUser(id string) string         { return "user-" + id }
func RoomAdmin(id string) string        { return "admin-" + id }
func RoomConversation(id string) string { return "conversation-" + id }

const RoomAllAdmins = "admin-room"
