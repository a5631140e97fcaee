package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	authapp "github.com/bondyapp/bondy/application/auth"
	"github.com/bondyapp/bondy/constant"
	"github.com/bondyapp/bondy/utils/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Tokens gate the connection; the origin check stays permissive so
	// mobile webviews work.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated requests to websocket sessions. Browsers
// cannot set headers on websocket dials, so the token rides a query param.
func Handler(hub *Hub, authApp authapp.AuthApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "token required", http.StatusUnauthorized)
			return
		}

		var (
			actorID string
			role    constant.ActorRole
		)
		if id, err := authApp.ValidateUserToken(r.Context(), token); err == nil {
			actorID, role = id, constant.RoleUser
		} else if id, err := authApp.ValidateAdminToken(r.Context(), token); err == nil {
			actorID, role = id, constant.RoleAdmin
		} else {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.String("error", err.Error()))
			return
		}

		client := NewClient(hub, conn, actorID, role)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
