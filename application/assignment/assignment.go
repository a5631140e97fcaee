package assignment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	bookingrepo "github.com/bondyapp/bondy/repository/booking"
	companionrepo "github.com/bondyapp/bondy/repository/companion"
	conversationrepo "github.com/bondyapp/bondy/repository/conversation"
	messagerepo "github.com/bondyapp/bondy/repository/message"
	"github.com/bondyapp/bondy/repository/mongodb"
	redisrepo "github.com/bondyapp/bondy/repository/redis"
	"github.com/bondyapp/bondy/thirdparty/notify"
	cerr "github.com/bondyapp/bondy/utils/errors"
	"github.com/bondyapp/bondy/utils/logger"
)

type AssignmentApp interface {
	AssignCompanion(ctx context.Context, adminID, bookingID, companionID string) (*model.BookingEntity, error)
	ListBookings(ctx context.Context, status constant.BookingStatus, page, limit int) (*model.BookingListResponse, error)
}

type assignmentAppImpl struct {
	bookingRepo      bookingrepo.BookingRepository
	companionRepo    companionrepo.CompanionRepository
	conversationRepo conversationrepo.ConversationRepository
	messageRepo      messagerepo.MessageRepository
	redisRepo        redisrepo.Repository
	notifier         notify.Notifier
}

func NewAssignmentApp(bookingRepo bookingrepo.BookingRepository, companionRepo companionrepo.CompanionRepository, conversationRepo conversationrepo.ConversationRepository, messageRepo messagerepo.MessageRepository, redisRepo redisrepo.Repository, notifier notify.Notifier) AssignmentApp {
	return &assignmentAppImpl{
		bookingRepo:      bookingRepo,
		companionRepo:    companionRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		redisRepo:        redisRepo,
		notifier:         notifier,
	}
}

// postAction is a side effect that runs only after the booking mutation has
// been persisted. Failures are logged and never unwind the assignment.
type postAction struct {
	name string
	run  func(ctx context.Context) error
}

// AssignCompanion commits a companion to a pending booking. The booking
// update is the one fatal step; the companion conversation, the system
// message, the chat event and the outbound notification all run afterwards
// as best-effort follow-ups.
func (s *assignmentAppImpl) AssignCompanion(ctx context.Context, adminID, bookingID, companionID string) (*model.BookingEntity, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("[AssignCompanion] err bookingRepo.GetByID", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if booking == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	if booking.Status != constant.BookingStatusPending {
		return nil, cerr.SetCustomError(constant.ErrInvalidState)
	}

	companion, err := s.companionRepo.Get(ctx, &model.CompanionFilter{ID: companionID})
	if err != nil {
		logger.Error("[AssignCompanion] err companionRepo.Get", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if companion == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	if !companion.Assignable() {
		return nil, cerr.SetCustomError(constant.ErrInvalidState)
	}

	now := time.Now()
	booking.Status = constant.BookingStatusConfirmed
	booking.AssignedCompanionID = companionID
	booking.AssignedAt = &now
	booking.AssignedBy = adminID

	if err := s.bookingRepo.Save(ctx, booking); err != nil {
		logger.Error("[AssignCompanion] err bookingRepo.Save", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	for _, action := range s.followUps(booking, companion, adminID) {
		if err := action.run(ctx); err != nil {
			logger.Error("[AssignCompanion] follow-up failed",
				zap.String("action", action.name),
				zap.String("booking_id", booking.ID),
				zap.String("error", err.Error()),
			)
		}
	}

	return booking, nil
}

func (s *assignmentAppImpl) followUps(booking *model.BookingEntity, companion *model.CompanionEntity, adminID string) []postAction {
	summary := fmt.Sprintf("You have been assigned to booking %s: %s on %s at %s (%s). Duration: %s. Task: %s. Requester: %s (%s).",
		booking.ID, booking.ServiceType, booking.Date, booking.Time, booking.Location,
		booking.Duration, booking.TaskDescription, booking.UserContact.Name, booking.UserContact.Phone)

	var conv *model.ConversationEntity

	return []postAction{
		{name: "companion-conversation", run: func(ctx context.Context) error {
			c, err := s.resolveCompanionThread(ctx, companion, adminID)
			if err != nil {
				return err
			}
			conv = c
			return nil
		}},
		{name: "system-message", run: func(ctx context.Context) error {
			if conv == nil {
				return errors.New("no conversation to post into")
			}
			msg := &model.MessageEntity{
				ID:             uuid.NewString(),
				ConversationID: conv.ID,
				Sender: model.Sender{
					UserID: adminID,
					Role:   constant.RoleSystem,
					Name:   "Bondy",
				},
				Content: summary,
				Type:    constant.MessageSystem,
			}
			msg, err := s.messageRepo.Create(ctx, msg)
			if err != nil {
				return err
			}
			if err := s.conversationRepo.ApplyMessage(ctx, conv.ID, &model.LastMessage{
				Content:    msg.Content,
				SenderRole: msg.Sender.Role,
				SentAt:     msg.CreatedAt,
			}, constant.ConversationActive); err != nil {
				return err
			}
			payload, _ := json.Marshal(msg)
			event, _ := json.Marshal(&model.ChatEvent{
				Type:    model.EventNewMessage,
				Room:    model.RoomConversation(conv.ID),
				Sender:  adminID,
				Payload: payload,
			})
			return s.redisRepo.Publish(ctx, model.ChatEventsChannel, event)
		}},
		{name: "companion-notification", run: func(ctx context.Context) error {
			if s.notifier == nil {
				return nil
			}
			res, err := s.notifier.Send(ctx, companion.Mobile, summary)
			if err != nil {
				return err
			}
			if res != nil {
				logger.Info("[AssignCompanion] companion notified",
					zap.String("provider", res.Provider),
					zap.String("status", string(res.Status)),
				)
			}
			return nil
		}},
	}
}

// resolveCompanionThread finds the companion's open conversation or opens a
// new high-priority one. A duplicate-key error means another request created
// the thread between lookup and insert, so refetch instead of failing.
func (s *assignmentAppImpl) resolveCompanionThread(ctx context.Context, companion *model.CompanionEntity, adminID string) (*model.ConversationEntity, error) {
	conv, err := s.conversationRepo.FindOpenByRequester(ctx, companion.ID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv, err = s.conversationRepo.Create(ctx, &model.ConversationEntity{
		ID:          uuid.NewString(),
		RequesterID: companion.ID,
		Participants: []model.Participant{
			{UserID: companion.ID, Role: constant.RoleCompanion},
		},
		Status:          constant.ConversationActive,
		Priority:        constant.PriorityHigh,
		Subject:         constant.AssignmentSubject,
		AssignedAdminID: adminID,
	})
	if errors.Is(err, mongodb.ErrDuplicate) {
		return s.conversationRepo.FindOpenByRequester(ctx, companion.ID)
	}
	return conv, err
}

func (s *assignmentAppImpl) ListBookings(ctx context.Context, status constant.BookingStatus, page, limit int) (*model.BookingListResponse, error) {
	items, total, err := s.bookingRepo.ListByStatus(ctx, status, page, limit)
	if err != nil {
		logger.Error("[ListBookings] err bookingRepo.ListByStatus", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return &model.BookingListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    limit,
	}, nil
}
