package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	assignmentapp "github.com/bondyapp/bondy/application/assignment"
	authapp "github.com/bondyapp/bondy/application/auth"
	bookingapp "github.com/bondyapp/bondy/application/booking"
	chatapp "github.com/bondyapp/bondy/application/chat"
	companionapp "github.com/bondyapp/bondy/application/companion"
	locationapp "github.com/bondyapp/bondy/application/location"
	paymentapp "github.com/bondyapp/bondy/application/payment"
	uploadapp "github.com/bondyapp/bondy/application/upload"
	"github.com/bondyapp/bondy/cmd/config"
	redisclient "github.com/bondyapp/bondy/cmd/redis"
	_ "github.com/bondyapp/bondy/docs"
	adminRepo "github.com/bondyapp/bondy/repository/admin"
	bookingRepo "github.com/bondyapp/bondy/repository/booking"
	companionRepo "github.com/bondyapp/bondy/repository/companion"
	conversationRepo "github.com/bondyapp/bondy/repository/conversation"
	locationRepo "github.com/bondyapp/bondy/repository/location"
	messageRepo "github.com/bondyapp/bondy/repository/message"
	"github.com/bondyapp/bondy/repository/mongodb"
	redisRepo "github.com/bondyapp/bondy/repository/redis"
	userRepo "github.com/bondyapp/bondy/repository/user"
	"github.com/bondyapp/bondy/thirdparty/notify"
	"github.com/bondyapp/bondy/thirdparty/objstore"
	"github.com/bondyapp/bondy/thirdparty/payment"
	"github.com/bondyapp/bondy/thirdparty/rabbitmq"
	"github.com/bondyapp/bondy/transport"
	"github.com/bondyapp/bondy/transport/ws"
	"github.com/bondyapp/bondy/utils/logger"
)

// @title Bondy API
// @version 1.0
// @description Companion services marketplace API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	if err := mongodb.New(cfg); err != nil {
		logger.Fatal("err connect mongodb", zap.Error(err))
	}
	defer func() {
		_ = mongodb.Close()
	}()
	db := mongodb.Get()

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Notification gateway chain
	notifier := notify.NewGateway(cfg.Notify)

	// Object store for presigned uploads
	store, err := objstore.NewClient(cfg.ObjectStore)
	if err != nil {
		logger.Fatal("err connect object store", zap.Error(err))
	}
	if err := store.EnsureBucket(ctx); err != nil {
		logger.Fatal("err ensure bucket", zap.Error(err))
	}

	// RabbitMQ for delayed booking reminders; the service stays up without it
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq unavailable, booking reminders disabled", zap.Error(err))
		publisher = nil
	}
	if publisher != nil {
		consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, notifier)
		if err != nil {
			logger.Warn("rabbitmq consumer init failed", zap.Error(err))
		} else {
			go func() {
				if err := consumer.Start(ctx); err != nil {
					logger.Error("rabbitmq consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	AdminRepo := adminRepo.NewAdminRepository(db)
	CompanionRepo := companionRepo.NewCompanionRepository(db)
	BookingRepo := bookingRepo.NewBookingRepository(db)
	ConversationRepo := conversationRepo.NewConversationRepository(db)
	MessageRepo := messageRepo.NewMessageRepository(db)
	LocationRepo := locationRepo.NewLocationRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	AuthApp := authapp.NewAuthApp(cfg, UserRepo, AdminRepo, RedisRepo)
	BookingApp := bookingapp.NewBookingApp(cfg, BookingRepo, UserRepo, CompanionRepo, publisher)
	AssignmentApp := assignmentapp.NewAssignmentApp(BookingRepo, CompanionRepo, ConversationRepo, MessageRepo, RedisRepo, notifier)
	ChatApp := chatapp.NewChatApp(ConversationRepo, MessageRepo, RedisRepo)
	CompanionApp := companionapp.NewCompanionApp(CompanionRepo)
	LocationApp := locationapp.NewLocationApp(LocationRepo)
	PaymentApp := paymentapp.NewPaymentApp(cfg, BookingRepo, payment.NewClient(cfg.Payment))
	UploadApp := uploadapp.NewUploadApp(store)

	httpTransport := transport.NewTransport(cfg, &transport.RestHandler{
		AuthApp:       AuthApp,
		BookingApp:    BookingApp,
		AssignmentApp: AssignmentApp,
		ChatApp:       ChatApp,
		CompanionApp:  CompanionApp,
		LocationApp:   LocationApp,
		PaymentApp:    PaymentApp,
		UploadApp:     UploadApp,
	})

	// Websocket hub fed by Redis pub/sub
	hub := ws.NewHub(redisclient.Get())
	go hub.Run(ctx)
	go hub.ListenToRedis(ctx)

	chatMux := http.NewServeMux()
	chatMux.HandleFunc("/ws", ws.Handler(hub, AuthApp))
	chatServer := &http.Server{
		Addr:    ":" + cfg.Chat.Port,
		Handler: chatMux,
	}
	go func() {
		logger.Info("Chat server running", zap.String("port", cfg.Chat.Port))
		if err := chatServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed chat server", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	_ = chatServer.Shutdown(shutdownCtx)
}
