package config_test

import (
	"testing"

	"github.com/saulo-duarte/chronos-quiz/internal/config"
	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { config.InitLogger("info", "text") })

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")

		config.Init()
		if lvl := config.Logger().GetLevel(); lvl != logrus.DebugLevel {
			t.Errorf("expected debug level, got %v", lvl)
		}
		if _, ok := config.Logger().Formatter.(*logrus.JSONFormatter); !ok {
			t.Errorf("expected JSON formatter, got %T", config.Logger().Formatter)
		}
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		t.Setenv("LOG_FORMAT", "")

		config.Init()
		if lvl := config.Logger().GetLevel(); lvl != logrus.InfoLevel {
			t.Errorf("expected info level, got %v", lvl)
		}
		if _, ok := config.Logger().Formatter.(*logrus.TextFormatter); !ok {
			t.Errorf("expected text formatter, got %T", config.Logger().Formatter)
		}
	})
}
