package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const sessionIDKey ctxKey = "session_id"

var logger = logrus.New()

func Init() {
	InitLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

func InitLogger(level, format string) {
	logger.SetOutput(os.Stdout)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

func Logger() *logrus.Logger {
	return logger
}

// WithContext returns a log entry tagged with the request and session ids found in ctx.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if sid, ok := ctx.Value(sessionIDKey).(string); ok && sid != "" {
		entry = entry.WithField("session_id", sid)
	}
	return entry
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}
