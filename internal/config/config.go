package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	CORS   CORSConfig
	Email  EmailConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// StoreConfig selects and configures the content store
type StoreConfig struct {
	Driver     string
	SQLitePath string

	DatabaseURL      string
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	ConnTimeout      time.Duration
	StatementTimeout time.Duration
	MaxConns         int32

	ProfileTable     string
	SkillsTable      string
	ProjectsTable    string
	SubmissionsTable string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// EmailConfig holds the SMTP settings for contact notifications
type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	ToEmail  string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			ReadHeaderTimeout: getDurationEnv("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "portfolio.db"),

			DatabaseURL:      os.Getenv("DATABASE_URL"),
			Host:             getEnv("DB_HOST", "localhost"),
			Port:             getEnv("DB_PORT", "5432"),
			User:             getEnv("DB_USER", "postgres"),
			Password:         os.Getenv("DB_PASSWORD"),
			Name:             getEnv("DB_NAME", "postgres"),
			SSLMode:          getEnv("DB_SSLMODE", "require"),
			ConnTimeout:      getDurationEnv("DB_CONN_TIMEOUT", 10*time.Second),
			StatementTimeout: getDurationEnv("DB_STATEMENT_TIMEOUT", 30*time.Second),
			MaxConns:         getInt32Env("DB_MAX_CONNS", 5),

			ProfileTable:     getEnv("TABLE_PROFILE", "profile"),
			SkillsTable:      getEnv("TABLE_SKILLS", "skills"),
			ProjectsTable:    getEnv("TABLE_PROJECTS", "projects"),
			SubmissionsTable: getEnv("TABLE_SUBMISSIONS", "submissions"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort: getEnv("SMTP_PORT", "587"),
			SMTPUser: os.Getenv("SMTP_USER"),
			SMTPPass: os.Getenv("SMTP_PASS"),
			ToEmail:  os.Getenv("TO_EMAIL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the store settings; missing SMTP settings only disable
// notifications.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" && c.Store.Password == "" {
			return fmt.Errorf("DATABASE_URL or DB_PASSWORD is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.Store.Driver, DriverPostgres, DriverSQLite)
	}

	if !c.IsEmailConfigured() {
		log.Println("Warning: SMTP credentials not configured. Contact notifications are disabled.")
	}
	return nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	if c.Store.DatabaseURL != "" {
		return c.Store.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Store.User, c.Store.Password),
		Host:   net.JoinHostPort(c.Store.Host, c.Store.Port),
		Path:   "/" + c.Store.Name,
		RawQuery: url.Values{
			"sslmode":         {c.Store.SSLMode},
			"connect_timeout": {strconv.Itoa(int(c.Store.ConnTimeout.Seconds()))},
		}.Encode(),
	}
	return u.String()
}

// IsEmailConfigured reports whether contact notifications can be sent.
func (c *Config) IsEmailConfigured() bool {
	return c.Email.SMTPUser != "" && c.Email.SMTPPass != "" && c.Email.ToEmail != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
