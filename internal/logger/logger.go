package logger

import (
	"io"
	"os"

	"hospital-website-backend/internal/config"

	"github.com/sirupsen/logrus"
)

// SecurityLogger is the name attached to audit-relevant log lines
const SecurityLogger = "hospital.security"

// New builds the application logger from config
func New(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	if cfg.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// Discard returns a logger that drops everything (tests)
func Discard() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

// Security returns the entry used for security events
func Security(log logrus.FieldLogger) *logrus.Entry {
	return log.WithField("logger", SecurityLogger)
}
