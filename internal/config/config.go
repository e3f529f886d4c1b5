package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the tracker.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Health   HealthConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// PostgresConfig holds DB connection values. DSN wins over the individual parts.
type PostgresConfig struct {
	DSN         string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int32
	ApplySchema bool
}

// RedisConfig holds the optional audit stream target. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// HealthConfig controls the optional probe listener. An empty Addr disables it.
type HealthConfig struct {
	Addr string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := getEnvAsInt("POSTGRES_MAX_CONNS", 1)
	if maxConns <= 0 {
		return nil, fmt.Errorf("invalid POSTGRES_MAX_CONNS: %d", maxConns)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "employee-tracker"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Postgres: PostgresConfig{
			DSN:         os.Getenv("POSTGRES_DSN"),
			Host:        getEnv("POSTGRES_HOST", "localhost"),
			Port:        getEnv("POSTGRES_PORT", "5432"),
			User:        getEnv("POSTGRES_USER", "postgres"),
			Password:    os.Getenv("POSTGRES_PASSWORD"),
			Database:    getEnv("POSTGRES_DB", "postgres"),
			SSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
			MaxConns:    int32(maxConns),
			ApplySchema: getEnvAsBool("POSTGRES_APPLY_SCHEMA", false),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Stream:   getEnv("REDIS_STREAM", "employee-tracker:audit"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Health: HealthConfig{
			Addr: os.Getenv("HEALTH_ADDR"),
		},
	}

	return cfg, nil
}

// ConnString returns the DSN, assembling a postgres:// URL from the parts when none was given.
func (p PostgresConfig) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.Database,
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	} else {
		u.User = url.User(p.User)
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{p.SSLMode}}.Encode()
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
