// Package logger provides the structured JSON logger shared by every
// component. Log output goes to stdout so it can be collected by whatever
// runs the process.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger embeds a configured logrus.Logger.
type Logger struct {
	*logrus.Logger
}

// New creates a logger at the given level. Unrecognized levels fall back
// to info.
func New(level string) *Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Logger: log}
}
