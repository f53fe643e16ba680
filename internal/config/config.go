package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Upload    UploadConfig
	Ai        AIConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type StoreConfig struct {
	Driver     string // "memory", "postgres", "sqlite", "redis"
	Connection string // DSN, sqlite path or redis URL
	KeyPrefix  string // redis only
}

type UploadConfig struct {
	Dir           string
	MaxBytes      int64
	SweepInterval time.Duration // 0 disables the sweep
	SweepGrace    time.Duration
}

type AIConfig struct {
	Provider  string // "gemini", "ollama", "openai"
	APIKey    string
	BaseURL   string
	FastModel string
	ProModel  string
	Timeout   time.Duration
}

type EventsConfig struct {
	Topic        string
	NatsURL      string // empty disables forwarding
	AuditLogPath string
}

type TelemetryConfig struct {
	MetricsEnabled bool
	OtelEnabled    bool
	OtelEndpoint   string
	ServiceName    string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			Connection: getEnv("STORE_CONNECTION", ""),
			KeyPrefix:  getEnv("STORE_KEY_PREFIX", "workspace"),
		},
		Upload: UploadConfig{
			Dir:           getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes:      getEnvAsInt64("UPLOAD_MAX_BYTES", 10*1024*1024),
			SweepInterval: getEnvAsDuration("UPLOAD_SWEEP_INTERVAL", time.Hour),
			SweepGrace:    getEnvAsDuration("UPLOAD_SWEEP_GRACE", 24*time.Hour),
		},
		Ai: AIConfig{
			Provider:  strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			APIKey:    firstEnv("", "LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_AI_API_KEY"),
			BaseURL:   getEnv("LLM_BASE_URL", ""),
			FastModel: getEnv("LLM_FAST_MODEL", ""),
			ProModel:  getEnv("LLM_PRO_MODEL", ""),
			Timeout:   getEnvAsDuration("LLM_TIMEOUT", 120*time.Second),
		},
		Events: EventsConfig{
			Topic:        getEnv("EVENTS_TOPIC", "workspace.events"),
			NatsURL:      getEnv("NATS_URL", ""),
			AuditLogPath: getEnv("AUDIT_LOG_PATH", "logs/events.log"),
		},
		Telemetry: TelemetryConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			OtelEnabled:    getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "ai-workspace-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// firstEnv returns the first non-empty variable among keys.
func firstEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
