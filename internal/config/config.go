package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	HTTPAddr string

	QuizPath  string
	SourceDir string

	GeminiAPIKey  string
	GenerateModel string
	CompareModel  string
	AITimeout     time.Duration

	// Pause before the next question becomes interactive.
	PaceOpen   time.Duration
	PaceChoice time.Duration

	DatabaseDSN string

	SessionSecret string
	SessionTTL    time.Duration

	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment. A .env
// that exists but cannot be parsed is logged and skipped.
func Load() Settings {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.WithError(err).Warn("Failed to load .env file")
	}

	return Settings{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		QuizPath:      envOr("QUIZ_PATH", "data/quiz_data.json"),
		SourceDir:     envOr("SOURCE_DIR", "data"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GenerateModel: envOr("GEMINI_MODEL_GENERATE", "gemini-2.0-flash"),
		CompareModel:  envOr("GEMINI_MODEL_COMPARE", "gemini-2.0-flash"),
		AITimeout:     envDuration("AI_TIMEOUT", 60*time.Second),
		PaceOpen:      envDuration("PACE_OPEN", 4*time.Second),
		PaceChoice:    envDuration("PACE_CHOICE", 3*time.Second),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    envDuration("SESSION_TTL", 12*time.Hour),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "text"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

// envDuration accepts Go durations ("4s") or a bare number of seconds.
func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
