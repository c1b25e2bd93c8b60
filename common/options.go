package common

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogOption selects the logger used by library components.
type LogOption struct {
	LogLevel logrus.Level
	Logger   *logrus.Logger
}

// NewLogger returns the configured logger. Without an explicit logger or level, logs are discarded.
func NewLogger(opt ...LogOption) *logrus.Logger {
	if len(opt) > 0 && opt[0].Logger != nil {
		return opt[0].Logger
	}

	logger := logrus.New()
	if len(opt) == 0 || opt[0].LogLevel == logrus.PanicLevel {
		logger.Out = io.Discard
		return logger
	}

	logger.SetLevel(opt[0].LogLevel)
	return logger
}
