package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the API, read from the environment
// (and an optional .env file).
type Config struct {
	Port               string
	MongoURI           string
	MongoDatabase      string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int
	YouTubeAPIKey      string
	YouTubeAPIURL      string
	YouTubeTimeout     time.Duration
	CORSAllowedOrigins []string
	AuthRateLimit      int
	AuthRateBurst      int
	LogLevel           slog.Level
	CookieSecure       bool
	RedisURL           string
	MetadataCacheTTL   time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a missing or short JWT_SECRET is.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables.")
	}

	cfg := Config{
		Port:               getString("API_PORT", "8080"),
		MongoURI:           getString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getString("MONGO_DATABASE", "video_streaming"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenTTL:     getDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL:    getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:         getInt("BCRYPT_COST", 14),
		YouTubeAPIKey:      os.Getenv("YOUTUBE_API_KEY"),
		YouTubeAPIURL:      getString("YOUTUBE_API_URL", "https://www.googleapis.com/youtube/v3"),
		YouTubeTimeout:     getDuration("YOUTUBE_TIMEOUT", 15*time.Second),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		AuthRateLimit:      getInt("AUTH_RATE_LIMIT", 20),
		AuthRateBurst:      getInt("AUTH_RATE_BURST", 5),
		LogLevel:           getLevel("LOG_LEVEL", slog.LevelInfo),
		CookieSecure:       getBool("COOKIE_SECURE", false),
		RedisURL:           os.Getenv("REDIS_URL"),
		MetadataCacheTTL:   getDuration("METADATA_CACHE_TTL", time.Hour),
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET must be set")
	}
	if len(cfg.JWTSecret) < 16 {
		return cfg, errors.New("JWT_SECRET must be at least 16 characters")
	}
	return cfg, nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getLevel(key string, fallback slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fallback
	}
	return level
}
