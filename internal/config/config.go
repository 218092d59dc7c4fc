package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type ServerConfig struct {
	Port           string
	Env            string
	StaticDir      string
	AllowedOrigins []string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Mongo       MongoConfig
	Session     SessionConfig
	Log         LogConfig
	StoreDriver string
	// LoginAudit enables writing a Login record for every successful login.
	LoginAudit bool
}

// Load reads .env if present, then the environment.
func Load(serviceName string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		ServiceName: serviceName,
		Server: ServerConfig{
			Port:           getEnv("API_PORT", "8000"),
			Env:            getEnv("APP_ENV", "development"),
			StaticDir:      getEnv("STATIC_DIR", "static"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", nil),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database:       getEnv("MONGO_DATABASE", "sugam"),
			ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			RequestTimeout: getEnvAsDuration("MONGO_REQUEST_TIMEOUT", 5*time.Second),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", ""),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "elearn_session"),
			Secure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		StoreDriver: getEnv("STORE_DRIVER", StoreMongo),
		LoginAudit:  getEnvAsBool("LOGIN_AUDIT_ENABLED", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LogFields returns the non-secret settings for the startup log line.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("port", c.Server.Port),
		zap.String("store", c.StoreDriver),
		zap.String("mongo_database", c.Mongo.Database),
		zap.Duration("session_ttl", c.Session.TTL),
		zap.Bool("login_audit", c.LoginAudit),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
