package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	assignmentapp "github.com/bondyapp/bondy/application/assignment"
	authapp "github.com/bondyapp/bondy/application/auth"
	bookingapp "github.com/bondyapp/bondy/application/booking"
	chatapp "github.com/bondyapp/bondy/application/chat"
	companionapp "github.com/bondyapp/bondy/application/companion"
	locationapp "github.com/bondyapp/bondy/application/location"
	paymentapp "github.com/bondyapp/bondy/application/payment"
	uploadapp "github.com/bondyapp/bondy/application/upload"
	"github.com/bondyapp/bondy/cmd/config"
)

type RestHandler struct {
	AuthApp       authapp.AuthApp
	BookingApp    bookingapp.BookingApp
	AssignmentApp assignmentapp.AssignmentApp
	ChatApp       chatapp.ChatApp
	CompanionApp  companionapp.CompanionApp
	LocationApp   locationapp.LocationApp
	PaymentApp    paymentapp.PaymentApp
	UploadApp     uploadapp.UploadApp
}

func NewTransport(cfg *config.Config, rh *RestHandler) http.Handler {
	root := mux.NewRouter()

	root.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	root.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	root.Use(LoggingMiddleware())
	root.Use(MetricsMiddleware())
	root.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	root.Use(RateLimitMiddleware(cfg.RateLimit.Window, cfg.RateLimit.Ceiling, cfg.RateLimit.TrustProxy))

	// Public auth routes
	auth := root.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	auth.HandleFunc("/admin/login", rh.AdminLogin).Methods(http.MethodPost)

	// User-authenticated routes
	user := root.PathPrefix("/api").Subrouter()
	user.Use(UserAuthMiddleware(rh.AuthApp))
	user.HandleFunc("/auth/profile", rh.GetProfile).Methods(http.MethodGet)
	user.HandleFunc("/auth/profile", rh.UpdateProfile).Methods(http.MethodPut)

	user.HandleFunc("/bookings", rh.CreateBooking).Methods(http.MethodPost)
	user.HandleFunc("/bookings", rh.ListBookings).Methods(http.MethodGet)
	user.HandleFunc("/bookings/stats", rh.BookingStats).Methods(http.MethodGet)
	user.HandleFunc("/bookings/{id}", rh.UpdateBooking).Methods(http.MethodPut)
	user.HandleFunc("/bookings/{id}/cancel", rh.CancelBooking).Methods(http.MethodPost)
	user.HandleFunc("/bookings/{id}/rate", rh.RateBooking).Methods(http.MethodPost)

	user.HandleFunc("/chat/user/conversations", rh.UserConversation).Methods(http.MethodPost)
	user.HandleFunc("/chat/user/conversations", rh.ListUserConversations).Methods(http.MethodGet)
	user.HandleFunc("/chat/user/conversations/{id}/messages", rh.UserGetMessages).Methods(http.MethodGet)
	user.HandleFunc("/chat/user/conversations/{id}/messages", rh.UserSendMessage).Methods(http.MethodPost)
	user.HandleFunc("/chat/user/conversations/{id}/typing", rh.UserTyping).Methods(http.MethodPost)
	user.HandleFunc("/chat/user/messages/{id}", rh.UserDeleteMessage).Methods(http.MethodDelete)

	user.HandleFunc("/payments/orders", rh.CreateOrder).Methods(http.MethodPost)
	user.HandleFunc("/payments/verify", rh.VerifyPayment).Methods(http.MethodPost)

	user.HandleFunc("/s3/presign-upload", rh.PresignUpload).Methods(http.MethodPost)
	user.HandleFunc("/s3/presign-download", rh.PresignDownload).Methods(http.MethodGet)

	user.HandleFunc("/user-locations", rh.ListLocations).Methods(http.MethodGet)
	user.HandleFunc("/user-locations", rh.AddLocation).Methods(http.MethodPost)
	user.HandleFunc("/user-locations/{index}", rh.RemoveLocation).Methods(http.MethodDelete)
	user.HandleFunc("/user-locations/{index}/default", rh.SetDefaultLocation).Methods(http.MethodPut)

	// Admin-authenticated routes
	admin := root.PathPrefix("/api/admin").Subrouter()
	admin.Use(AdminAuthMiddleware(rh.AuthApp))
	admin.HandleFunc("/bookings", rh.AdminListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/assign", rh.AssignCompanion).Methods(http.MethodPost)

	admin.HandleFunc("/companions", rh.CreateCompanion).Methods(http.MethodPost)
	admin.HandleFunc("/companions", rh.ListCompanions).Methods(http.MethodGet)
	admin.HandleFunc("/companions/{id}", rh.GetCompanion).Methods(http.MethodGet)
	admin.HandleFunc("/companions/{id}", rh.UpdateCompanion).Methods(http.MethodPut)

	adminChat := root.PathPrefix("/api/chat/admin").Subrouter()
	adminChat.Use(AdminAuthMiddleware(rh.AuthApp))
	adminChat.HandleFunc("/conversations", rh.ListAdminConversations).Methods(http.MethodGet)
	adminChat.HandleFunc("/conversations/{id}/assign", rh.AssignConversation).Methods(http.MethodPost)
	adminChat.HandleFunc("/conversations/{id}/close", rh.CloseConversation).Methods(http.MethodPost)
	adminChat.HandleFunc("/conversations/{id}/messages", rh.AdminGetMessages).Methods(http.MethodGet)
	adminChat.HandleFunc("/conversations/{id}/messages", rh.AdminSendMessage).Methods(http.MethodPost)
	adminChat.HandleFunc("/messages/{id}", rh.AdminDeleteMessage).Methods(http.MethodDelete)

	return root
}

// Health handler
// @Summary Service health
// @Tags Ops
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}
