package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures the process-wide logrus logger. Release builds log JSON
// for ingestion; everything else stays human readable.
func Init(ginMode string) {
	logrus.SetOutput(os.Stdout)

	if ginMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Info("Logger initialized")
}
