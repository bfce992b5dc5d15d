// Package logger holds the process-wide logrus logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is shared by every package; attach context with WithFields.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetVerbose switches debug logging on or off
func SetVerbose(verbose bool) {
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
		return
	}
	Log.SetLevel(logrus.InfoLevel)
}
