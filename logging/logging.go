package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// InitLogger configures the process-wide logger. It may be called again to
// change the level, e.g. once flags have been parsed.
func InitLogger(level logrus.Level) *logrus.Logger {
	l := GetLogger()
	mu.Lock()
	defer mu.Unlock()
	l.SetLevel(level)
	return l
}

// GetLogger returns the process-wide logger, creating it at info level on
// first use so package-level vars can grab it from init().
func GetLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
