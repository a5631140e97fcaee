package model

import (
	"time"

	"github.com/bondyapp/bondy/constant"
)

// Sender identifies the author of a message.
type Sender struct {
	UserID string             `bson:"user_id" json:"user_id"`
	Role   constant.ActorRole `bson:"role" json:"role"`
	Name   string             `bson:"name" json:"name"`
}

// ReadReceipt marks a message as read by one participant.
type ReadReceipt struct {
	UserID string    `bson:"user_id" json:"user_id"`
	ReadAt time.Time `bson:"read_at" json:"read_at"`
}

// MessageEntity belongs to exactly one conversation. Deleted messages keep
// their document with the content replaced by a placeholder.
type MessageEntity struct {
	ID             string               `bson:"_id" json:"id"`
	ConversationID string               `bson:"conversation_id" json:"conversation_id"`
	Sender         Sender               `bson:"sender" json:"sender"`
	Content        string               `bson:"content" json:"content"`
	Type           constant.MessageType `bson:"type" json:"type"`
	ReadBy         []ReadReceipt        `bson:"read_by,omitempty" json:"read_by,omitempty"`
	Deleted        bool                 `bson:"deleted,omitempty" json:"deleted,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
}

// SendMessageRequest for posting into a conversation
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type MessageListResponse struct {
	Items      []*MessageEntity `json:"items"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
}
