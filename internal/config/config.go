package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	LogLevel   string

	MongoURI      string
	MongoDatabase string

	AuditDBUrl string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	AuthDomain       string
	AuthAudience     string
	AuthClientID     string
	AuthClientSecret string
	AuthBarberRoleID string
	AuthConnection   string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	S3UploadPrefix     string
	SignedURLTTL       time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "barbershop"),

		AuditDBUrl: getEnv("AUDIT_DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),

		AuthDomain:       getEnv("AUTH_DOMAIN", "https://barbershop.eu.auth0.com"),
		AuthAudience:     getEnv("AUTH_AUDIENCE", "http://localhost:8080/graphql"),
		AuthClientID:     getEnv("AUTH_CLIENT_ID", ""),
		AuthClientSecret: getEnv("AUTH_CLIENT_SECRET", ""),
		AuthBarberRoleID: getEnv("AUTH_BARBER_ROLE_ID", ""),
		AuthConnection:   getEnv("AUTH_CONNECTION", "Username-Password-Authentication"),

		AWSRegion:          getEnv("AWS_REGION", "eu-central-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Bucket:           getEnv("S3_BUCKET", "barbershop-data"),
		S3UploadPrefix:     getEnv("S3_UPLOAD_PREFIX", "barberProfileImages"),
		SignedURLTTL:       getDuration("SIGNED_URL_TTL", 3600*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) AuditEnabled() bool {
	return c.AuditDBUrl != ""
}

func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
