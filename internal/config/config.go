package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Google OAuth configuration
	GoogleOAuth GoogleOAuthConfig

	// CORS configuration
	CORS CORSConfig

	// Generation and embedding service
	LLM LLMConfig

	// Default travel pricing
	Planner PlannerConfig

	// Lifecycle event bus
	NATS NATSConfig

	// X-Ray tracing
	Tracing TracingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MaxLifetime    time.Duration
	ConnTimeout    time.Duration
	QueryTimeout   time.Duration
	RunMigrations  bool
	MigrationsPath string
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// GoogleOAuthConfig holds Google OAuth configuration
type GoogleOAuthConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	FrontendCallback string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// LLMConfig configures the Ollama runtime used for itinerary drafts and
// destination embeddings.
type LLMConfig struct {
	Host           string
	Model          string
	EmbeddingModel string
	EmbeddingDims  int
	RequestTimeout time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	ContextResults int
}

// PlannerConfig holds the cost parameters used when neither a stop nor its
// destination carries its own.
type PlannerConfig struct {
	DefaultBaseCost  float64
	DefaultCostPerKm float64
}

// NATSConfig holds the event bus connection. An empty URL disables events.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
}

// TracingConfig toggles AWS X-Ray
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	DaemonAddr  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second), // generation is slow
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
			MaxBodyBytes:    int64(getIntEnv("SERVER_MAX_BODY_BYTES", 1<<20)),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "postgres"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getInt32Env("DB_MAX_CONNS", 5),
			MinConns:       getInt32Env("DB_MIN_CONNS", 0),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", time.Hour),
			ConnTimeout:    getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			QueryTimeout:   getDurationEnv("DB_QUERY_TIMEOUT", 30*time.Second),
			RunMigrations:  getBoolEnv("DB_RUN_MIGRATIONS", true),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations/0001_init.sql"),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getDurationEnv("JWT_ACCESS_TTL", 7*24*time.Hour), // 7 days
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:      getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback"),
			FrontendCallback: getEnv("GOOGLE_FRONTEND_CALLBACK_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
		LLM: LLMConfig{
			Host:           getEnv("OLLAMA_HOST", "http://localhost:11434"),
			Model:          getEnv("OLLAMA_MODEL", "llama3.1:8b"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			EmbeddingDims:  getIntEnv("OLLAMA_EMBEDDING_DIMS", 384),
			RequestTimeout: getDurationEnv("OLLAMA_REQUEST_TIMEOUT", 90*time.Second),
			MaxAttempts:    getIntEnv("OLLAMA_MAX_ATTEMPTS", 3),
			InitialBackoff: getDurationEnv("OLLAMA_INITIAL_BACKOFF", 500*time.Millisecond),
			ContextResults: getIntEnv("OLLAMA_CONTEXT_RESULTS", 3),
		},
		Planner: PlannerConfig{
			DefaultBaseCost:  getFloatEnv("PLANNER_DEFAULT_BASE_COST", 50),
			DefaultCostPerKm: getFloatEnv("PLANNER_DEFAULT_COST_PER_KM", 0.1),
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getBoolEnv("TRACING_ENABLED", false),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "travel-itinerary-api"),
			DaemonAddr:  getEnv("AWS_XRAY_DAEMON_ADDRESS", "127.0.0.1:2000"),
		},
	}

	if !config.Tracing.Enabled {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Check required database configuration
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if len(c.JWT.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 bytes")
	}
	if _, err := url.Parse(c.LLM.Host); err != nil {
		return fmt.Errorf("OLLAMA_HOST is not a valid URL: %w", err)
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("OLLAMA_MAX_ATTEMPTS must be at least 1")
	}
	if c.Planner.DefaultBaseCost < 0 || c.Planner.DefaultCostPerKm < 0 {
		return fmt.Errorf("planner default costs must be >= 0")
	}

	// Check required Google OAuth configuration
	if !c.IsGoogleOAuthConfigured() {
		log.Println("Warning: Google OAuth credentials not configured. Google login will not work.")
	}
	if c.NATS.URL == "" {
		log.Println("Warning: NATS_URL not set. Itinerary events will not be published.")
	}

	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%d",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		int(c.Database.ConnTimeout.Seconds()),
	)
}

// IsGoogleOAuthConfigured checks if Google OAuth is properly configured
func (c *Config) IsGoogleOAuthConfigured() bool {
	return c.GoogleOAuth.ClientID != "" && c.GoogleOAuth.ClientSecret != ""
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt32Env(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intValue)
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
