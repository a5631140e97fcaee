package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	authapp "github.com/bondyapp/bondy/application/auth"
	"github.com/bondyapp/bondy/constant"
	utilsContext "github.com/bondyapp/bondy/utils/context"
	cerr "github.com/bondyapp/bondy/utils/errors"
)

// UserAuthMiddleware validates a bearer token against user sessions and
// embeds the user id into the request context.
func UserAuthMiddleware(authApp authapp.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
				return
			}

			userID, err := authApp.ValidateUserToken(r.Context(), token)
			if err != nil {
				writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
				return
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithUserID(r.Context(), userID)))
		})
	}
}

// AdminAuthMiddleware is the admin counterpart; admin tokens carry a
// different audience and session namespace so the two cannot be swapped.
func AdminAuthMiddleware(authApp authapp.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
				return
			}

			adminID, err := authApp.ValidateAdminToken(r.Context(), token)
			if err != nil {
				writeError(w, cerr.SetCustomError(constant.ErrUnauthorize))
				return
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithAdminID(r.Context(), adminID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}
