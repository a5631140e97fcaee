package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type ChatConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret      string
	JWTExpiration  time.Duration
	SessionExpTime time.Duration
	BcryptCost     int
}

type RateLimitConfig struct {
	Window  time.Duration
	Ceiling int
	// TrustProxy keys buckets by X-Forwarded-For; enable only behind a
	// proxy that overwrites the header.
	TrustProxy bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type PaymentConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Currency  string
}

type ObjectStoreConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type WhatsAppConfig struct {
	Token    string
	SenderID string
	BaseURL  string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
}

type WebhookConfig struct {
	URL string
}

type NotifyConfig struct {
	WhatsApp WhatsAppConfig
	Twilio   TwilioConfig
	Webhook  WebhookConfig
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Chat        ChatConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Payment     PaymentConfig
	ObjectStore ObjectStoreConfig
	Notify      NotifyConfig
	RabbitMQ    RabbitMQConfig
}

// Load reads configuration from the environment, optionally seeded by a
// .env file in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		Server: ServerConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Chat: ChatConfig{
			Port: getEnv("CHAT_PORT", "8081"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "bondy"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			JWTExpiration:  getDuration("JWT_EXPIRATION", 24*time.Hour),
			SessionExpTime: getDuration("SESSION_EXPIRATION", 24*time.Hour),
			BcryptCost:     getInt("BCRYPT_COST", 10),
		},
		RateLimit: RateLimitConfig{
			Window:     getDuration("RATE_LIMIT_WINDOW", time.Minute),
			Ceiling:    getInt("RATE_LIMIT_CEILING", 120),
			TrustProxy: getBool("RATE_LIMIT_TRUST_PROXY", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Payment: PaymentConfig{
			KeyID:     getEnv("PAYMENT_KEY_ID", ""),
			KeySecret: getEnv("PAYMENT_KEY_SECRET", ""),
			BaseURL:   getEnv("PAYMENT_BASE_URL", "https://api.razorpay.com/v1"),
			Currency:  getEnv("PAYMENT_CURRENCY", "INR"),
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:  getEnv("OBJECT_STORE_ENDPOINT", ""),
			Region:    getEnv("OBJECT_STORE_REGION", ""),
			Bucket:    getEnv("OBJECT_STORE_BUCKET", "bondy-uploads"),
			AccessKey: getEnv("OBJECT_STORE_ACCESS_KEY", ""),
			SecretKey: getEnv("OBJECT_STORE_SECRET_KEY", ""),
			UseSSL:    getBool("OBJECT_STORE_USE_SSL", true),
		},
		Notify: NotifyConfig{
			WhatsApp: WhatsAppConfig{
				Token:    getEnv("WHATSAPP_TOKEN", ""),
				SenderID: getEnv("WHATSAPP_SENDER_ID", ""),
				BaseURL:  getEnv("WHATSAPP_BASE_URL", "https://graph.facebook.com/v18.0"),
			},
			Twilio: TwilioConfig{
				AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
				AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
				FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
				BaseURL:    getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),
			},
			Webhook: WebhookConfig{
				URL: getEnv("NOTIFY_WEBHOOK_URL", ""),
			},
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", ""),
			Port:     getInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
