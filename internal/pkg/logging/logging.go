package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CampusLinkHQ/CampusLink/internal/pkg/env"
)

var logger = logrus.New()

// Setup configures the shared application logger. Debug mode adds caller
// reporting; production logs JSON for ingestion.
func Setup() *logrus.Logger {
	logger.Out = os.Stderr
	if env.GetEnv("APP_DEBUG", "false") == "true" || env.IsDev() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetReportCaller(true)
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetReportCaller(false)
	}
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})
	return logger
}

// Logger returns the shared application logger.
func Logger() *logrus.Logger {
	return logger
}
