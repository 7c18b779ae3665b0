package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	JWTSecret string
	TokenTTL  time.Duration

	Database Database
	Salon    Salon
	AMQP     AMQP

	CORSOrigins    []string
	TrustedProxies []string
	RateLimit      RateLimit
}

type Database struct {
	Driver        string
	DSN           string
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
	LogLevel      string
}

type Salon struct {
	MonitorInterval time.Duration
	CommitTimeout   time.Duration
	EditorIdleTTL   time.Duration
}

type AMQP struct {
	URL      string
	Exchange string
}

type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		Database: Database{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			DSN:           getEnv("DB_DSN", ""),
			MaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			SlowThreshold: getEnvAsDuration("DB_SLOW_THRESHOLD", time.Second),
			LogLevel:      getEnv("DB_LOG_LEVEL", "warn"),
		},
		Salon: Salon{
			MonitorInterval: getEnvAsDuration("SALON_MONITOR_INTERVAL", 500*time.Millisecond),
			CommitTimeout:   getEnvAsDuration("SALON_COMMIT_TIMEOUT", 10*time.Second),
			EditorIdleTTL:   getEnvAsDuration("SALON_EDITOR_IDLE_TTL", 30*time.Minute),
		},
		AMQP: AMQP{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "salon_events"),
		},
		CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"*"}),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES", []string{"127.0.0.1"}),
		RateLimit: RateLimit{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 50),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
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

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
