package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Upstream completion provider
	APIKey string // bearer token for the completion endpoint
	APIURL string // OpenAI-compatible endpoint, e.g. "https://api.together.xyz"
	Model  string // default model identifier

	SessionTTL     time.Duration // idle sessions are evicted after this
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		APIKey:          mustGetenv("TOGETHER_API_KEY"),
		APIURL:          getenvDefault("TOGETHER_API_URL", "https://api.together.xyz"),
		Model:           getenvDefault("TOGETHER_MODEL", "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"),
		SessionTTL:      getDurationDefault("SESSION_TTL", time.Hour),
		AllowedOrigins:  strings.Split(getenvDefault("ALLOWED_ORIGINS", "*"), ","),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
