package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer             string        // Issuer claim for session tokens (default: beam)
	DatabaseFile       string        // Path to SQLite database file (default: ./beam.db)
	PepperFile         string        // Path to the password hashing pepper file (default: ./pepper)
	SecretFile         string        // Path to the token signing secret file (default: ./secret)
	AssetsDir          string        // Directory for uploaded avatar files (default: ./assets)
	TokenTTL           time.Duration // Session token lifetime (default: 14 days)
	ForwardAuthEnabled bool          // Whether the X-Forwarded-User login path is active (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:             getEnvOrDefault("BEAM_ISSUER", "beam"),
		DatabaseFile:       getEnvOrDefault("BEAM_DATABASE_FILE", "beam.db"),
		PepperFile:         getEnvOrDefault("BEAM_PEPPER_FILE", "pepper"),
		SecretFile:         getEnvOrDefault("BEAM_SECRET_FILE", "secret"),
		AssetsDir:          getEnvOrDefault("BEAM_ASSETS_DIR", "assets"),
		TokenTTL:           getEnvDurationOrDefault("BEAM_TOKEN_TTL", 14*24*time.Hour),
		ForwardAuthEnabled: getEnvBoolOrDefault("BEAM_FORWARD_AUTH_ENABLED", false),

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

	return defaultValue
}
