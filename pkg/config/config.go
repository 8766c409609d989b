package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Model      ModelConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Storage    StorageConfig
	Notion     NotionConfig
	Trello     TrelloConfig
	AssemblyAI AssemblyAIConfig
	JWT        JWTConfig
	Metrics    MetricsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8000"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// ModelConfig selects and tunes the summarization model. An API key that
// starts with "hf_" routes to the HuggingFace router, anything else to
// OpenAI.
type ModelConfig struct {
	APIKey      string        `envconfig:"OPENAI_API_KEY"`
	BaseURL     string        `envconfig:"LLM_BASE_URL"`
	Name        string        `envconfig:"LLM_MODEL"`
	MaxTokens   int           `envconfig:"LLM_MAX_TOKENS"`
	Temperature float64       `envconfig:"LLM_TEMPERATURE" default:"0.2"`
	Timeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	RateLimit   float64       `envconfig:"LLM_RATE_LIMIT" default:"2"`
	RateBurst   int           `envconfig:"LLM_RATE_BURST" default:"4"`
	MaxRetry    time.Duration `envconfig:"LLM_MAX_RETRY_ELAPSED" default:"30s"`
}

// DatabaseConfig holds database configuration. History is disabled when
// Host is empty.
type DatabaseConfig struct {
	Host          string `envconfig:"DB_HOST"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" default:"postgres"`
	Password      string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name          string `envconfig:"DB_NAME" default:"meetmind"`
	SSLMode       string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns      int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CacheConfig picks the summary cache backend: "memory", "redis" or "none"
type CacheConfig struct {
	Driver string        `envconfig:"CACHE_DRIVER" default:"memory"`
	TTL    time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

// StorageConfig holds storage configuration. Raw model output archiving is
// disabled when Endpoint is empty.
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meetmind"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL"`
}

// NotionConfig holds Notion API settings
type NotionConfig struct {
	BaseURL string `envconfig:"NOTION_BASE_URL" default:"https://api.notion.com"`
	Version string `envconfig:"NOTION_VERSION" default:"2022-06-28"`
}

// TrelloConfig holds Trello API settings. Key, Token and ListID back the
// server-configured export endpoint.
type TrelloConfig struct {
	BaseURL     string  `envconfig:"TRELLO_BASE_URL" default:"https://api.trello.com"`
	Key         string  `envconfig:"TRELLO_KEY"`
	Token       string  `envconfig:"TRELLO_TOKEN"`
	ListID      string  `envconfig:"TRELLO_LIST_ID"`
	Concurrency int     `envconfig:"TRELLO_CONCURRENCY" default:"4"`
	RateLimit   float64 `envconfig:"TRELLO_RATE_LIMIT" default:"8"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY"`
}

// JWTConfig holds JWT configuration. Meeting history routes are public
// when AccessSecret is empty.
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"24h"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"meetmind"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// Load loads configuration from environment variables, reading an optional
// .env file first.
func Load() (*Config, error) {
	cfg, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv reads the optional .env file and the environment without
// validating, for tools that only need part of the configuration.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}
	return FromEnv()
}

// FromEnv processes the environment into a Config without reading .env or
// validating.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Model.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	switch c.Cache.Driver {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("CACHE_DRIVER must be one of memory, redis, none (got %q)", c.Cache.Driver)
	}
	if c.Trello.Concurrency < 1 {
		return fmt.Errorf("TRELLO_CONCURRENCY must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// HistoryEnabled reports whether a database is configured
func (c *Config) HistoryEnabled() bool {
	return c.Database.Host != ""
}

// ArchiveEnabled reports whether object storage is configured
func (c *Config) ArchiveEnabled() bool {
	return c.Storage.Endpoint != ""
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
