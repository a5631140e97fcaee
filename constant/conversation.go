package constant

type ConversationStatus string

const (
	ConversationWaiting ConversationStatus = "waiting"
	ConversationActive  ConversationStatus = "active"
	ConversationClosed  ConversationStatus = "closed"
)

type ConversationPriority string

const (
	PriorityLow    ConversationPriority = "low"
	PriorityNormal ConversationPriority = "normal"
	PriorityHigh   ConversationPriority = "high"
)

// Actor roles recorded on participants and message senders.
type ActorRole string

const (
	RoleUser      ActorRole = "user"
	RoleAdmin     ActorRole = "admin"
	RoleCompanion ActorRole = "companion"
	RoleSystem    ActorRole = "system"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

const (
	DefaultSubject        = "General Inquiry"
	AssignmentSubject     = "Booking Assignment"
	MaxMessageLength      = 2000
	DeletedMessageContent = "This message was deleted"
)

type AdminRole string

const (
	AdminRoleStandard AdminRole = "admin"
	AdminRoleSuper    AdminRole = "super_admin"
)
