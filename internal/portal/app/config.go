package app

import (
	"os"
	"strconv"
	"time"

	"github.com/placementpro/placementd/pkg/tokenx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: placementd)
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens, must differ
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	MongoURI      string // Required: connection string
	MongoDatabase string // Database name (default: placementd)

	AdminEmail    string // Optional: seed admin account on startup
	AdminPassword string

	MediaEndpoint  string // Optional: object store for avatars/logos
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaUseSSL    bool
	MediaPublicURL string

	Env                 string // Environment (dev, staging, prod) (default: dev)
	LogLevel            string // Log level (debug, info, warn, error) (default: info)
	LogFormat           string // Log format (json, text) (default: json)
	Port                int    // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration
}

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("TOKEN_ISSUER", "placementd"),
		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_TTL", tokenx.DefaultAccessTTL),
		RefreshTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_TTL", tokenx.DefaultRefreshTTL),

		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "placementd"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		MediaEndpoint:  os.Getenv("MEDIA_ENDPOINT"),
		MediaAccessKey: os.Getenv("MEDIA_ACCESS_KEY"),
		MediaSecretKey: os.Getenv("MEDIA_SECRET_KEY"),
		MediaBucket:    getEnvOrDefault("MEDIA_BUCKET", "placementd-media"),
		MediaUseSSL:    getEnvBoolOrDefault("MEDIA_USE_SSL", false),
		MediaPublicURL: os.Getenv("MEDIA_PUBLIC_URL"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
