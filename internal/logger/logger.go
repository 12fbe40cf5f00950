package logger

import (
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init initializes the structured logger. JSON output is used so the
// logs can be shipped as-is; development mode switches to text.
func Init(level string, environment string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if environment == "development" {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// WithFields is a shorthand over the package logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	if Log == nil {
		Init("info", "development")
	}
	return Log.WithFields(fields)
}
