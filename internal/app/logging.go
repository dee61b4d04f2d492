package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// SetupLogging configures the global logrus logger. Logs go to stderr so
// stdout stays clean for export lines.
func SetupLogging(cfg LoggingConfig, verbose bool) error {
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logrus.WithField("format", cfg.Format).Warnln("Unknown log format")
	}
	return nil
}
