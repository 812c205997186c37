package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Environment            string        `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort             int           `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL            string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL               string        `envconfig:"REDIS_URL"`
	SecretKey              string        `envconfig:"SECRET_KEY" required:"true"`
	TokenExpirationDays    int           `envconfig:"TOKEN_EXPIRATION_DAYS" default:"2"`
	TokenExpirationSeconds int           `envconfig:"TOKEN_EXPIRATION_SECONDS" default:"1800"`
	BcryptLogRounds        int           `envconfig:"BCRYPT_LOG_ROUNDS" default:"12"`
	LogLevel               string        `envconfig:"LOG_LEVEL" default:"info"`
	S3Bucket               string        `envconfig:"S3_BUCKET" default:"profile-media-bucket"`
	AuditQueueSize         int           `envconfig:"AUDIT_QUEUE_SIZE" default:"256"`
	DBMaxOpenConns         int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	DBMaxIdleConns         int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime      time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	OtelEndpoint           string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// TokenExpiry is the additive token lifetime: configured days plus
// configured seconds.
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.TokenExpirationDays)*24*time.Hour +
		time.Duration(c.TokenExpirationSeconds)*time.Second
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// .env file is optional, mainly for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
