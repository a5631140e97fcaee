package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	conversationrepo "github.com/bondyapp/bondy/repository/conversation"
	messagerepo "github.com/bondyapp/bondy/repository/message"
	"github.com/bondyapp/bondy/repository/mongodb"
	redisrepo "github.com/bondyapp/bondy/repository/redis"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

// authzCacheTTL bounds how long a positive or negative access verdict is
// reused before rechecking against the conversation document.
const authzCacheTTL = 30 * time.Second

// Actor is the authenticated caller of a chat operation.
type Actor struct {
	ID   string
	Role constant.ActorRole
	Name string
}

type ChatApp interface {
	CreateOrGetConversation(ctx context.Context, actor Actor) (*model.ConversationEntity, error)
	ListUserConversations(ctx context.Context, userID string) ([]*model.ConversationListItem, error)
	ListAdminConversations(ctx context.Context, adminID string) ([]*model.ConversationListItem, error)
	GetMessages(ctx context.Context, actor Actor, conversationID string, page, limit int) (*model.MessageListResponse, error)
	SendMessage(ctx context.Context, actor Actor, conversationID string, req *model.SendMessageRequest) (*model.MessageEntity, error)
	AssignConversation(ctx context.Context, adminID, conversationID string) error
	CloseConversation(ctx context.Context, adminID, conversationID string) error
	DeleteMessage(ctx context.Context, actor Actor, messageID string) error
	PublishTyping(ctx context.Context, actor Actor, conversationID string) error
}

type chatAppImpl struct {
	conversationRepo conversationrepo.ConversationRepository
	messageRepo      messagerepo.MessageRepository
	redisRepo        redisrepo.Repository
}

func NewChatApp(conversationRepo conversationrepo.ConversationRepository, messageRepo messagerepo.MessageRepository, redisRepo redisrepo.Repository) ChatApp {
	return &chatAppImpl{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		redisRepo:        redisRepo,
	}
}

// CreateOrGetConversation returns the caller's open thread, creating one if
// none exists. The unique partial index on requester_id makes the
// find-or-create race safe: the loser of a concurrent insert refetches.
func (s *chatAppImpl) CreateOrGetConversation(ctx context.Context, actor Actor) (*model.ConversationEntity, error) {
	conv, err := s.conversationRepo.FindOpenByRequester(ctx, actor.ID)
	if err != nil {
		logger.Error("[CreateOrGetConversation] err FindOpenByRequester", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if conv != nil {
		return conv, nil
	}

	conv, err = s.conversationRepo.Create(ctx, &model.ConversationEntity{
		ID:          uuid.NewString(),
		RequesterID: actor.ID,
		Participants: []model.Participant{
			{UserID: actor.ID, Role: actor.Role},
		},
		Status:   constant.ConversationWaiting,
		Priority: constant.PriorityNormal,
		Subject:  constant.DefaultSubject,
	})
	if errors.Is(err, mongodb.ErrDuplicate) {
		conv, err = s.conversationRepo.FindOpenByRequester(ctx, actor.ID)
	}
	if err != nil {
		logger.Error("[CreateOrGetConversation] err conversationRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if conv == nil {
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return conv, nil
}

func (s *chatAppImpl) ListUserConversations(ctx context.Context, userID string) ([]*model.ConversationListItem, error) {
	items, err := s.conversationRepo.ListByParticipant(ctx, userID)
	if err != nil {
		logger.Error("[ListUserConversations] err ListByParticipant", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *chatAppImpl) ListAdminConversations(ctx context.Context, adminID string) ([]*model.ConversationListItem, error) {
	items, err := s.conversationRepo.ListForAdmin(ctx, adminID)
	if err != nil {
		logger.Error("[ListAdminConversations] err ListForAdmin", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *chatAppImpl) GetMessages(ctx context.Context, actor Actor, conversationID string, page, limit int) (*model.MessageListResponse, error) {
	if _, err := s.authorizedConversation(ctx, actor, conversationID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	items, total, err := s.messageRepo.ListByConversation(ctx, conversationID, page, limit)
	if err != nil {
		logger.Error("[GetMessages] err ListByConversation", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	// Storage returns newest first for cheap pagination; clients want
	// chronological order within the page.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	now := time.Now()
	if err := s.messageRepo.MarkRead(ctx, conversationID, actor.ID, now); err != nil {
		logger.Warn("[GetMessages] err MarkRead", zap.String("error", err.Error()))
	}
	if err := s.conversationRepo.UpdateLastSeen(ctx, conversationID, actor.ID, now); err != nil {
		logger.Warn("[GetMessages] err UpdateLastSeen", zap.String("error", err.Error()))
	}

	return &model.MessageListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    limit,
	}, nil
}

func (s *chatAppImpl) SendMessage(ctx context.Context, actor Actor, conversationID string, req *model.SendMessageRequest) (*model.MessageEntity, error) {
	if req.Content == "" || utf8.RuneCountInString(req.Content) > constant.MaxMessageLength {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}

	conv, err := s.authorizedConversation(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Open() {
		return nil, cerr.SetCustomError(constant.ErrInvalidState)
	}

	msg := &model.MessageEntity{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Sender: model.Sender{
			UserID: actor.ID,
			Role:   actor.Role,
			Name:   actor.Name,
		},
		Content: req.Content,
		Type:    constant.MessageText,
	}
	msg, err = s.messageRepo.Create(ctx, msg)
	if err != nil {
		logger.Error("[SendMessage] err messageRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	// A message from either side moves a waiting thread to active
	if err := s.conversationRepo.ApplyMessage(ctx, conversationID, &model.LastMessage{
		Content:    msg.Content,
		SenderRole: msg.Sender.Role,
		SentAt:     msg.CreatedAt,
	}, constant.ConversationActive); err != nil {
		logger.Error("[SendMessage] err ApplyMessage", zap.String("error", err.Error()))
	}
	if err := s.conversationRepo.UpdateLastSeen(ctx, conversationID, actor.ID, msg.CreatedAt); err != nil {
		logger.Warn("[SendMessage] err UpdateLastSeen", zap.String("error", err.Error()))
	}

	s.publishEvent(ctx, model.EventNewMessage, model.RoomConversation(conversationID), actor.ID, msg)

	return msg, nil
}

// AssignConversation claims a waiting thread for an admin.
func (s *chatAppImpl) AssignConversation(ctx context.Context, adminID, conversationID string) error {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		logger.Error("[AssignConversation] err GetByID", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if conv == nil {
		return cerr.SetCustomError(constant.ErrNotFound)
	}
	if conv.AssignedAdminID != "" && conv.AssignedAdminID != adminID {
		return cerr.SetCustomError(constant.ErrInvalidState)
	}

	if err := s.conversationRepo.AssignAdmin(ctx, conversationID, adminID); err != nil {
		logger.Error("[AssignConversation] err AssignAdmin", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(ctx, model.EventConversationUpdated, model.RoomAllAdmins, adminID, map[string]string{
		"conversation_id": conversationID,
		"assigned_to":     adminID,
	})
	return nil
}

func (s *chatAppImpl) CloseConversation(ctx context.Context, adminID, conversationID string) error {
	conv, err := s.authorizedConversation(ctx, Actor{ID: adminID, Role: constant.RoleAdmin}, conversationID)
	if err != nil {
		return err
	}
	if !conv.Open() {
		return cerr.SetCustomError(constant.ErrInvalidState)
	}

	if err := s.conversationRepo.SetStatus(ctx, conversationID, constant.ConversationClosed); err != nil {
		logger.Error("[CloseConversation] err SetStatus", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(ctx, model.EventConversationUpdated, model.RoomConversation(conversationID), adminID, map[string]string{
		"conversation_id": conversationID,
		"status":          string(constant.ConversationClosed),
	})
	return nil
}

// DeleteMessage soft-deletes the caller's own message.
func (s *chatAppImpl) DeleteMessage(ctx context.Context, actor Actor, messageID string) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		logger.Error("[DeleteMessage] err messageRepo.GetByID", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}
	if msg == nil {
		return cerr.SetCustomError(constant.ErrNotFound)
	}
	if msg.Sender.UserID != actor.ID {
		return cerr.SetCustomError(constant.ErrForbidden)
	}

	if err := s.messageRepo.SoftDelete(ctx, messageID); err != nil {
		logger.Error("[DeleteMessage] err SoftDelete", zap.String("error", err.Error()))
		return cerr.SetCustomError(constant.ErrInternal)
	}

	s.publishEvent(ctx, model.EventConversationUpdated, model.RoomConversation(msg.ConversationID), actor.ID, map[string]string{
		"conversation_id": msg.ConversationID,
		"deleted_message": messageID,
	})
	return nil
}

// PublishTyping relays a typing indicator without touching storage.
func (s *chatAppImpl) PublishTyping(ctx context.Context, actor Actor, conversationID string) error {
	if _, err := s.authorizedConversation(ctx, actor, conversationID); err != nil {
		return err
	}
	s.publishEvent(ctx, model.EventTyping, model.RoomConversation(conversationID), actor.ID, map[string]string{
		"conversation_id": conversationID,
		"user_id":         actor.ID,
	})
	return nil
}

// authorizedConversation loads a thread and checks the actor may touch it.
// Users must be participants; admins may touch threads assigned to them or
// still unassigned. Verdicts are cached briefly to keep hot threads cheap.
func (s *chatAppImpl) authorizedConversation(ctx context.Context, actor Actor, conversationID string) (*model.ConversationEntity, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		logger.Error("[authorizedConversation] err GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if conv == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	if allowed, found := s.redisRepo.GetAuthz(ctx, actor.ID, conversationID); found {
		if !allowed {
			return nil, cerr.SetCustomError(constant.ErrForbidden)
		}
		return conv, nil
	}

	allowed := false
	switch actor.Role {
	case constant.RoleAdmin:
		allowed = conv.AssignedAdminID == "" || conv.AssignedAdminID == actor.ID || conv.HasParticipant(actor.ID)
	default:
		allowed = conv.HasParticipant(actor.ID)
	}

	if err := s.redisRepo.CacheAuthz(ctx, actor.ID, conversationID, allowed, authzCacheTTL); err != nil {
		logger.Warn("[authorizedConversation] err CacheAuthz", zap.String("error", err.Error()))
	}

	if !allowed {
		return nil, cerr.SetCustomError(constant.ErrForbidden)
	}
	return conv, nil
}

func (s *chatAppImpl) publishEvent(ctx context.Context, eventType, room, sender string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	event, err := json.Marshal(&model.ChatEvent{
		Type:    eventType,
		Room:    room,
		Sender:  sender,
		Payload: body,
	})
	if err != nil {
		return
	}
	if err := s.redisRepo.Publish(ctx, model.ChatEventsChannel, event); err != nil {
		logger.Warn("[publishEvent] err redis publish", zap.String("error", err.Error()))
	}
}
