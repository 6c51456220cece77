package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	OAuth      OAuthConfig
	JWT        JWTConfig
	Storage    StorageConfig
	LiveKit    LiveKitConfig
	AssemblyAI AssemblyAIConfig
	Groq       GroqConfig
	Extraction ExtractionConfig
	SMTP       SMTPConfig
	Jira       JiraConfig
	Worker     WorkerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	PublicURL       string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string `envconfig:"CACHE_BACKEND" default:"memory"` // "memory" or "redis"
}

// OAuthConfig holds OAuth configuration
type OAuthConfig struct {
	Google GoogleOAuthConfig
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type            string // "minio" or "s3"
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string // external endpoint when MinIO sits behind a reverse proxy
}

// LiveKitConfig holds LiveKit server credentials.
type LiveKitConfig struct {
	Host          string `envconfig:"LIVEKIT_HOST" default:"http://localhost:7880"`
	APIKey        string `envconfig:"LIVEKIT_API_KEY"`
	APISecret     string `envconfig:"LIVEKIT_API_SECRET"`
	WebhookAPIKey string `envconfig:"LIVEKIT_WEBHOOK_API_KEY"`
	UseMock       bool   `envconfig:"LIVEKIT_USE_MOCK"`
}

// AssemblyAIConfig holds speech-to-text credentials.
type AssemblyAIConfig struct {
	APIKey        string `envconfig:"ASSEMBLYAI_API_KEY"`
	WebhookSecret string `envconfig:"ASSEMBLYAI_WEBHOOK_SECRET"`
	BaseURL       string `envconfig:"ASSEMBLYAI_BASE_URL" default:"https://api.assemblyai.com/v2"`
}

// GroqConfig holds the chat-completions credentials used by the optional
// model extraction strategy.
type GroqConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY"`
	Model   string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	BaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com"`
}

// ExtractionConfig tunes the action-item extraction pipeline.
type ExtractionConfig struct {
	Strategy       string  `envconfig:"EXTRACTION_STRATEGY" default:"pattern"`
	MinSimilarity  float64 `envconfig:"EXTRACTION_MIN_SIMILARITY" default:"0.65"`
	DedupThreshold float64 `envconfig:"EXTRACTION_DEDUP_THRESHOLD" default:"0.98"`
	MinTaskLength  int     `envconfig:"EXTRACTION_MIN_TASK_LENGTH" default:"3"`
}

// SMTPConfig holds the notification mailer settings.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"noreply@meetwise.io"`
}

// JiraConfig holds the issue tracker integration settings.
type JiraConfig struct {
	BaseURL    string `envconfig:"JIRA_BASE_URL"`
	Email      string `envconfig:"JIRA_EMAIL"`
	APIToken   string `envconfig:"JIRA_API_TOKEN"`
	ProjectKey string `envconfig:"JIRA_PROJECT_KEY"`
}

// WorkerConfig tunes the processing worker pool.
type WorkerConfig struct {
	Count          int           `envconfig:"WORKER_COUNT" default:"3"`
	PollInterval   time.Duration `envconfig:"WORKER_POLL_INTERVAL" default:"5s"`
	StuckThreshold time.Duration `envconfig:"WORKER_STUCK_THRESHOLD" default:"10m"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			PublicURL:       getEnv("PUBLIC_URL", "http://localhost:8080"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meetwise"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OAuth: OAuthConfig{
			Google: GoogleOAuthConfig{
				ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
				ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
				RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/v1/auth/google/callback"),
			},
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Storage: StorageConfig{
			Type:            getEnv("STORAGE_TYPE", "minio"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meetwise"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
	}

	// Flat integration sections come in via envconfig; the tags carry the
	// full variable names so no prefix is applied.
	for _, section := range []interface{}{
		&config.Cache,
		&config.LiveKit,
		&config.AssemblyAI,
		&config.Groq,
		&config.Extraction,
		&config.SMTP,
		&config.Jira,
		&config.Worker,
	} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("load config section: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OAuth.Google.ClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	if c.OAuth.Google.ClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", c.Cache.Backend)
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
