package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Ai       AIConfig
	Store    DocumentStoreConfig
	Sheets   SheetsConfig
	SMTP     SMTPConfig
	Dispatch DispatchConfig
	Outcome  OutcomeConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	BodyLimit          int
}

type AIConfig struct {
	LLMProvider     string // "gemini", "ollama" or "anthropic"
	LLMModel        string
	GeminiAPIKey    string
	AnthropicAPIKey string
	OllamaBaseURL   string
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
	TopK            int
}

type DocumentStoreConfig struct {
	Backend         string // "mongo", "postgres" or "memory"
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	PostgresDSN     string
	ConsoleBaseURL  string
	// MemoryRetention bounds how long the memory backend keeps a record.
	MemoryRetention time.Duration
}

type SheetsConfig struct {
	SpreadsheetId string
	Worksheet     string
	// Credentials holds inline service-account JSON or a path to a key file.
	Credentials string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	Receiver   string
}

type DispatchConfig struct {
	Workers         int
	QueueSize       int
	EnqueueTimeout  time.Duration
	SinkTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type OutcomeConfig struct {
	Retention   time.Duration
	RedisKey    string
	RedisMaxLen int
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
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			BodyLimit:          getEnvAsInt("APP_BODY_LIMIT", 1024*1024),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:        getEnv("LLM_MODEL", ""),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", getEnv("GOOGLE_GEMINI_API_KEY", "")),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 2048),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 25*time.Second),
			TopK:            getEnvAsInt("RECOMMEND_TOP_K", 5),
		},
		Store: DocumentStoreConfig{
			Backend:         getEnv("DOCUMENT_STORE", "mongo"),
			MongoURI:        getEnv("MONGO_URI", ""),
			MongoDatabase:   getEnv("MONGO_DATABASE", "smarterstarts"),
			MongoCollection: getEnv("MONGO_COLLECTION", "smarterstarts_sessions"),
			PostgresDSN:     getEnv("DB_CONNECTION_STRING", ""),
			ConsoleBaseURL:  getEnv("DOCUMENT_CONSOLE_URL", ""),
			MemoryRetention: getEnvAsDuration("MEMORY_STORE_RETENTION", 72*time.Hour),
		},
		Sheets: SheetsConfig{
			SpreadsheetId: getEnv("SHEETS_SPREADSHEET_ID", ""),
			Worksheet:     getEnv("SHEETS_WORKSHEET", "Sheet1"),
			Credentials:   getEnv("GOOGLE_CREDENTIALS", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", getEnv("ALERT_EMAIL", "")),
			Password:   getEnv("SMTP_PASSWORD", getEnv("ALERT_EMAIL_PASSWORD", "")),
			SenderName: getEnv("SMTP_SENDER_NAME", "SmarterStarts"),
			Receiver:   getEnv("ALERT_RECEIVER", ""),
		},
		Dispatch: DispatchConfig{
			Workers:         getEnvAsInt("DISPATCH_WORKERS", 4),
			QueueSize:       getEnvAsInt("DISPATCH_QUEUE_SIZE", 64),
			EnqueueTimeout:  getEnvAsDuration("DISPATCH_ENQUEUE_TIMEOUT", 2*time.Second),
			SinkTimeout:     getEnvAsDuration("DISPATCH_SINK_TIMEOUT", 20*time.Second),
			ShutdownTimeout: getEnvAsDuration("DISPATCH_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Outcome: OutcomeConfig{
			Retention:   getEnvAsDuration("OUTCOME_RETENTION", 24*time.Hour),
			RedisKey:    getEnv("OUTCOME_REDIS_KEY", "smarterstarts:fanout:outcomes"),
			RedisMaxLen: getEnvAsInt("OUTCOME_REDIS_MAX_LEN", 500),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("25s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
