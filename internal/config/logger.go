package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. LOG_LEVEL accepts the usual
// logrus level names and defaults to info.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
