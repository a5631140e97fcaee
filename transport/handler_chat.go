package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	chatapp "github.com/bondyapp/bondy/application/chat"
	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/model"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
	validatorx "github.com/bondyapp/bondy/utils/validator"
)

const adminDisplayName = "Support"

// userActor resolves the calling user into a chat actor with display name.
func (s *RestHandler) userActor(r *http.Request) (chatapp.Actor, bool) {
	ctx := r.Context()
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		return chatapp.Actor{}, false
	}
	actor := chatapp.Actor{ID: userID, Role: constant.RoleUser}
	if profile, err := s.AuthApp.GetProfile(ctx, userID); err == nil {
		actor.Name = profile.Name
	}
	return actor, true
}

func adminActor(r *http.Request) (chatapp.Actor, bool) {
	adminID, ok := utilsContext.GetAdminID(r.Context())
	if !ok {
		return chatapp.Actor{}, false
	}
	return chatapp.Actor{ID: adminID, Role: constant.RoleAdmin, Name: adminDisplayName}, true
}

// UserConversation handler
// @Summary Open or resume the caller's conversation
// @Description Returns the existing open thread or creates a new waiting one
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.ConversationEntity}
// @Router /api/chat/user/conversations [post]
func (s *RestHandler) UserConversation(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.userActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.ChatApp.CreateOrGetConversation(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListUserConversations handler
// @Summary List the caller's conversations
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]model.ConversationListItem}
// @Router /api/chat/user/conversations [get]
func (s *RestHandler) ListUserConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.ChatApp.ListUserConversations(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UserGetMessages handler
// @Summary Read a conversation
// @Description Returns a page of messages in chronological order and marks them read
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=model.MessageListResponse}
// @Failure 403 {object} Response
// @Router /api/chat/user/conversations/{id}/messages [get]
func (s *RestHandler) UserGetMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.userActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	page, limit := pagination(r)
	res, err := s.ChatApp.GetMessages(r.Context(), actor, mux.Vars(r)["id"], page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UserSendMessage handler
// @Summary Send a message
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body model.SendMessageRequest true "Message"
// @Success 200 {object} Response{data=model.MessageEntity}
// @Failure 403 {object} Response
// @Router /api/chat/user/conversations/{id}/messages [post]
func (s *RestHandler) UserSendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.userActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}
	s.sendMessage(w, r, actor)
}

// UserTyping handler
// @Summary Broadcast a typing indicator
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} Response
// @Router /api/chat/user/conversations/{id}/typing [post]
func (s *RestHandler) UserTyping(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.userActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.ChatApp.PublishTyping(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// UserDeleteMessage handler
// @Summary Delete own message
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /api/chat/user/messages/{id} [delete]
func (s *RestHandler) UserDeleteMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.userActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.ChatApp.DeleteMessage(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ListAdminConversations handler
// @Summary List conversations for the admin inbox
// @Description Threads assigned to the caller plus unassigned waiting ones
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]model.ConversationListItem}
// @Router /api/chat/admin/conversations [get]
func (s *RestHandler) ListAdminConversations(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utilsContext.GetAdminID(r.Context())
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.ChatApp.ListAdminConversations(r.Context(), adminID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AssignConversation handler
// @Summary Claim a waiting conversation
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /api/chat/admin/conversations/{id}/assign [post]
func (s *RestHandler) AssignConversation(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utilsContext.GetAdminID(r.Context())
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.ChatApp.AssignConversation(r.Context(), adminID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// CloseConversation handler
// @Summary Close a conversation
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /api/chat/admin/conversations/{id}/close [post]
func (s *RestHandler) CloseConversation(w http.ResponseWriter, r *http.Request) {
	adminID, ok := utilsContext.GetAdminID(r.Context())
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.ChatApp.CloseConversation(r.Context(), adminID, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdminGetMessages handler
// @Summary Read a conversation as admin
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response{data=model.MessageListResponse}
// @Failure 403 {object} Response
// @Router /api/chat/admin/conversations/{id}/messages [get]
func (s *RestHandler) AdminGetMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := adminActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	page, limit := pagination(r)
	res, err := s.ChatApp.GetMessages(r.Context(), actor, mux.Vars(r)["id"], page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// AdminSendMessage handler
// @Summary Send a message as admin
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body model.SendMessageRequest true "Message"
// @Success 200 {object} Response{data=model.MessageEntity}
// @Failure 403 {object} Response
// @Router /api/chat/admin/conversations/{id}/messages [post]
func (s *RestHandler) AdminSendMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := adminActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}
	s.sendMessage(w, r, actor)
}

// AdminDeleteMessage handler
// @Summary Delete own message as admin
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} Response
// @Router /api/chat/admin/messages/{id} [delete]
func (s *RestHandler) AdminDeleteMessage(w http.ResponseWriter, r *http.Request) {
	actor, ok := adminActor(r)
	if !ok {
		writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.ChatApp.DeleteMessage(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *RestHandler) sendMessage(w http.ResponseWriter, r *http.Request, actor chatapp.Actor) {
	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetValidationError(validatorx.Issues(err)))
		return
	}

	res, err := s.ChatApp.SendMessage(r.Context(), actor, mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
