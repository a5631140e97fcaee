package model

import (
	"time"

	"github.com/bondyapp/bondy/constant"
)

// Participant is one member of a conversation thread.
type Participant struct {
	UserID     string             `bson:"user_id" json:"user_id"`
	Role       constant.ActorRole `bson:"role" json:"role"`
	LastSeenAt *time.Time         `bson:"last_seen_at,omitempty" json:"last_seen_at,omitempty"`
}

// LastMessage is the denormalized snapshot of a conversation's latest message.
type LastMessage struct {
	Content    string             `bson:"content" json:"content"`
	SenderRole constant.ActorRole `bson:"sender_role" json:"sender_role"`
	SentAt     time.Time          `bson:"sent_at" json:"sent_at"`
}

// ConversationEntity is a support/assignment thread. RequesterID is the
// participant the thread was opened for; a unique partial index on it
// guarantees at most one waiting/active conversation per requester.
type ConversationEntity struct {
	ID              string                        `bson:"_id" json:"id"`
	RequesterID     string                        `bson:"requester_id" json:"requester_id"`
	Participants    []Participant                 `bson:"participants" json:"participants"`
	Status          constant.ConversationStatus   `bson:"status" json:"status"`
	Priority        constant.ConversationPriority `bson:"priority" json:"priority"`
	Subject         string                        `bson:"subject" json:"subject"`
	AssignedAdminID string                        `bson:"assigned_admin_id,omitempty" json:"assigned_admin_id,omitempty"`
	LastMessage     *LastMessage                  `bson:"last_message,omitempty" json:"last_message,omitempty"`
	MessageCount    int64                         `bson:"message_count" json:"message_count"`
	CreatedAt       time.Time                     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time                     `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether the given actor is part of the thread.
func (c *ConversationEntity) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Open reports whether the thread still accepts messages.
func (c *ConversationEntity) Open() bool {
	return c.Status == constant.ConversationWaiting || c.Status == constant.ConversationActive
}

// ConversationListItem is a conversation annotated with its latest message.
type ConversationListItem struct {
	ConversationEntity `bson:",inline"`
	LatestMessage      *MessageEntity `bson:"latest_message,omitempty" json:"latest_message,omitempty"`
}
