package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	appchat "github.com/bondyapp/bondy/application/chat"
	"github.com/bondyapp/bondy/constant"
	conversationmocks "github.com/bondyapp/bondy/mocks/repository/conversation"
	messagemocks "github.com/bondyapp/bondy/mocks/repository/message"
	redismocks "github.com/bondyapp/bondy/mocks/repository/redis"
	"github.com/bondyapp/bondy/model"
	"github.com/bondyapp/bondy/repository/mongodb"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

var userActor = appchat.Actor{ID: "user-1", Role: constant.RoleUser, Name: "Asha"}

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[want])
	}
}

func newApp(t *testing.T) (appchat.ChatApp, *conversationmocks.ConversationRepository, *messagemocks.MessageRepository, *redismocks.Repository) {
	convRepo := conversationmocks.NewConversationRepository(t)
	msgRepo := messagemocks.NewMessageRepository(t)
	redisRepo := redismocks.NewRepository(t)
	return appchat.NewChatApp(convRepo, msgRepo, redisRepo), convRepo, msgRepo, redisRepo
}

func TestChatApp_CreateOrGetConversation(t *testing.T) {
	t.Run("returns the existing open thread", func(t *testing.T) {
		app, convRepo, _, _ := newApp(t)
		existing := &model.ConversationEntity{ID: "conv-1", RequesterID: "user-1", Status: constant.ConversationWaiting}
		convRepo.On("FindOpenByRequester", mock.Anything, "user-1").Return(existing, nil).Once()

		got, err := app.CreateOrGetConversation(context.Background(), userActor)
		if err != nil {
			t.Fatalf("CreateOrGetConversation() error = %v", err)
		}
		if got.ID != "conv-1" {
			t.Fatalf("conversation id = %s, want conv-1", got.ID)
		}
	})

	t.Run("creates a waiting thread when none is open", func(t *testing.T) {
		app, convRepo, _, _ := newApp(t)
		convRepo.On("FindOpenByRequester", mock.Anything, "user-1").Return(nil, nil).Once()
		convRepo.
			On("Create", mock.Anything, mock.MatchedBy(func(c *model.ConversationEntity) bool {
				return c.RequesterID == "user-1" &&
					c.Status == constant.ConversationWaiting &&
					c.Subject == constant.DefaultSubject &&
					c.Priority == constant.PriorityNormal &&
					c.HasParticipant("user-1")
			})).
			Return(func(_ context.Context, c *model.ConversationEntity) *model.ConversationEntity { return c }, nil).
			Once()

		got, err := app.CreateOrGetConversation(context.Background(), userActor)
		if err != nil {
			t.Fatalf("CreateOrGetConversation() error = %v", err)
		}
		if got.Status != constant.ConversationWaiting {
			t.Fatalf("status = %s, want waiting", got.Status)
		}
	})

	t.Run("duplicate insert loses the race and refetches", func(t *testing.T) {
		app, convRepo, _, _ := newApp(t)
		winner := &model.ConversationEntity{ID: "conv-2", RequesterID: "user-1", Status: constant.ConversationWaiting}

		convRepo.On("FindOpenByRequester", mock.Anything, "user-1").Return(nil, nil).Once()
		convRepo.
			On("Create", mock.Anything, mock.AnythingOfType("*model.ConversationEntity")).
			Return(nil, mongodb.ErrDuplicate).
			Once()
		convRepo.On("FindOpenByRequester", mock.Anything, "user-1").Return(winner, nil).Once()

		got, err := app.CreateOrGetConversation(context.Background(), userActor)
		if err != nil {
			t.Fatalf("CreateOrGetConversation() error = %v", err)
		}
		if got.ID != "conv-2" {
			t.Fatalf("conversation id = %s, want the winner conv-2", got.ID)
		}
	})
}

func TestChatApp_SendMessage(t *testing.T) {
	openConv := func() *model.ConversationEntity {
		return &model.ConversationEntity{
			ID:          "conv-1",
			RequesterID: "user-1",
			Status:      constant.ConversationWaiting,
			Participants: []model.Participant{
				{UserID: "user-1", Role: constant.RoleUser},
			},
		}
	}

	t.Run("success: message persists and event publishes", func(t *testing.T) {
		app, convRepo, msgRepo, redisRepo := newApp(t)

		convRepo.On("GetByID", mock.Anything, "conv-1").Return(openConv(), nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "user-1", "conv-1").Return(false, false).Once()
		redisRepo.On("CacheAuthz", mock.Anything, "user-1", "conv-1", true, mock.AnythingOfType("time.Duration")).Return(nil).Once()
		msgRepo.
			On("Create", mock.Anything, mock.MatchedBy(func(m *model.MessageEntity) bool {
				return m.ConversationID == "conv-1" &&
					m.Content == "hello" &&
					m.Sender.UserID == "user-1" &&
					m.Type == constant.MessageText
			})).
			Return(func(_ context.Context, m *model.MessageEntity) *model.MessageEntity { return m }, nil).
			Once()
		convRepo.
			On("ApplyMessage", mock.Anything, "conv-1", mock.AnythingOfType("*model.LastMessage"), constant.ConversationActive).
			Return(nil).
			Once()
		convRepo.
			On("UpdateLastSeen", mock.Anything, "conv-1", "user-1", mock.AnythingOfType("time.Time")).
			Return(nil).
			Once()
		redisRepo.
			On("Publish", mock.Anything, model.ChatEventsChannel, mock.AnythingOfType("[]uint8")).
			Return(nil).
			Once()

		got, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: "hello"})
		if err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
		if got.ID == "" {
			t.Fatal("SendMessage() did not assign an id")
		}
	})

	t.Run("error: non-participant is forbidden", func(t *testing.T) {
		app, convRepo, _, redisRepo := newApp(t)
		conv := openConv()
		conv.Participants = []model.Participant{{UserID: "someone-else", Role: constant.RoleUser}}

		convRepo.On("GetByID", mock.Anything, "conv-1").Return(conv, nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "user-1", "conv-1").Return(false, false).Once()
		redisRepo.On("CacheAuthz", mock.Anything, "user-1", "conv-1", false, mock.AnythingOfType("time.Duration")).Return(nil).Once()

		_, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: "hello"})
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("error: cached negative verdict short-circuits", func(t *testing.T) {
		app, convRepo, _, redisRepo := newApp(t)
		convRepo.On("GetByID", mock.Anything, "conv-1").Return(openConv(), nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "user-1", "conv-1").Return(false, true).Once()

		_, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: "hello"})
		assertErrCode(t, err, constant.ErrForbidden)
	})

	t.Run("error: closed conversation rejects messages", func(t *testing.T) {
		app, convRepo, _, redisRepo := newApp(t)
		conv := openConv()
		conv.Status = constant.ConversationClosed

		convRepo.On("GetByID", mock.Anything, "conv-1").Return(conv, nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "user-1", "conv-1").Return(true, true).Once()

		_, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: "hello"})
		assertErrCode(t, err, constant.ErrInvalidState)
	})

	t.Run("error: empty content", func(t *testing.T) {
		app, _, _, _ := newApp(t)
		_, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: ""})
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})

	t.Run("length limit counts characters, not bytes", func(t *testing.T) {
		// 1000 Devanagari characters occupy 3000 bytes
		content := strings.Repeat("म", 1000)

		app, convRepo, msgRepo, redisRepo := newApp(t)
		convRepo.On("GetByID", mock.Anything, "conv-1").Return(openConv(), nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "user-1", "conv-1").Return(false, false).Once()
		redisRepo.On("CacheAuthz", mock.Anything, "user-1", "conv-1", true, mock.AnythingOfType("time.Duration")).Return(nil).Once()
		msgRepo.
			On("Create", mock.Anything, mock.AnythingOfType("*model.MessageEntity")).
			Return(func(_ context.Context, m *model.MessageEntity) *model.MessageEntity { return m }, nil).
			Once()
		convRepo.
			On("ApplyMessage", mock.Anything, "conv-1", mock.AnythingOfType("*model.LastMessage"), constant.ConversationActive).
			Return(nil).
			Once()
		convRepo.
			On("UpdateLastSeen", mock.Anything, "conv-1", "user-1", mock.AnythingOfType("time.Time")).
			Return(nil).
			Once()
		redisRepo.
			On("Publish", mock.Anything, model.ChatEventsChannel, mock.AnythingOfType("[]uint8")).
			Return(nil).
			Once()

		if _, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: content}); err != nil {
			t.Fatalf("SendMessage() rejected %d characters: %v", 1000, err)
		}
	})

	t.Run("error: over the character limit", func(t *testing.T) {
		app, _, _, _ := newApp(t)
		content := strings.Repeat("म", constant.MaxMessageLength+1)
		_, err := app.SendMessage(context.Background(), userActor, "conv-1", &model.SendMessageRequest{Content: content})
		assertErrCode(t, err, constant.ErrInvalidRequest)
	})
}

func TestChatApp_AdminAccess(t *testing.T) {
	adminActor := appchat.Actor{ID: "admin-1", Role: constant.RoleAdmin, Name: "Support"}

	t.Run("admin may read an unassigned thread", func(t *testing.T) {
		app, convRepo, msgRepo, redisRepo := newApp(t)
		conv := &model.ConversationEntity{
			ID:          "conv-1",
			RequesterID: "user-1",
			Status:      constant.ConversationWaiting,
			Participants: []model.Participant{
				{UserID: "user-1", Role: constant.RoleUser},
			},
		}

		convRepo.On("GetByID", mock.Anything, "conv-1").Return(conv, nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "admin-1", "conv-1").Return(false, false).Once()
		redisRepo.On("CacheAuthz", mock.Anything, "admin-1", "conv-1", true, mock.AnythingOfType("time.Duration")).Return(nil).Once()
		msgRepo.
			On("ListByConversation", mock.Anything, "conv-1", 1, 50).
			Return([]*model.MessageEntity{{ID: "m2"}, {ID: "m1"}}, int64(2), nil).
			Once()
		msgRepo.On("MarkRead", mock.Anything, "conv-1", "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
		convRepo.On("UpdateLastSeen", mock.Anything, "conv-1", "admin-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

		got, err := app.GetMessages(context.Background(), adminActor, "conv-1", 0, 0)
		if err != nil {
			t.Fatalf("GetMessages() error = %v", err)
		}
		// Newest-first storage order flips to chronological
		if got.Items[0].ID != "m1" || got.Items[1].ID != "m2" {
			t.Fatalf("message order = [%s %s], want [m1 m2]", got.Items[0].ID, got.Items[1].ID)
		}
	})

	t.Run("admin is forbidden from a thread assigned elsewhere", func(t *testing.T) {
		app, convRepo, _, redisRepo := newApp(t)
		conv := &model.ConversationEntity{
			ID:              "conv-1",
			RequesterID:     "user-1",
			Status:          constant.ConversationActive,
			AssignedAdminID: "admin-2",
		}

		convRepo.On("GetByID", mock.Anything, "conv-1").Return(conv, nil).Once()
		redisRepo.On("GetAuthz", mock.Anything, "admin-1", "conv-1").Return(false, false).Once()
		redisRepo.On("CacheAuthz", mock.Anything, "admin-1", "conv-1", false, mock.AnythingOfType("time.Duration")).Return(nil).Once()

		_, err := app.GetMessages(context.Background(), adminActor, "conv-1", 1, 50)
		assertErrCode(t, err, constant.ErrForbidden)
	})
}

func TestChatApp_DeleteMessage(t *testing.T) {
	t.Run("success: own message", func(t *testing.T) {
		app, _, msgRepo, redisRepo := newApp(t)
		msgRepo.
			On("GetByID", mock.Anything, "m1").
			Return(&model.MessageEntity{ID: "m1", ConversationID: "conv-1", Sender: model.Sender{UserID: "user-1"}}, nil).
			Once()
		msgRepo.On("SoftDelete", mock.Anything, "m1").Return(nil).Once()
		redisRepo.
			On("Publish", mock.Anything, model.ChatEventsChannel, mock.AnythingOfType("[]uint8")).
			Return(nil).
			Once()

		if err := app.DeleteMessage(context.Background(), userActor, "m1"); err != nil {
			t.Fatalf("DeleteMessage() error = %v", err)
		}
	})

	t.Run("error: someone else's message", func(t *testing.T) {
		app, _, msgRepo, _ := newApp(t)
		msgRepo.
			On("GetByID", mock.Anything, "m1").
			Return(&model.MessageEntity{ID: "m1", Sender: model.Sender{UserID: "other"}}, nil).
			Once()

		err := app.DeleteMessage(context.Background(), userActor, "m1")
		assertErrCode(t, err, constant.ErrForbidden)
	})
}
