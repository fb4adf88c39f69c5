// Package logging builds the loggers that are handed to every
// component. There is no package-level logger: callers construct one
// with New and pass it down explicitly.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config contains logging settings
type Config struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// New returns a logger configured by cfg. Invalid levels and formats
// fall back to info and text respectively and are reported on the
// returned logger. An output that is neither stdout nor stderr is
// treated as a file path and opened for appending; failing to open it
// is an error.
func New(cfg Config) (*logrus.Logger, error) {
	log := logrus.New()

	switch cfg.Output {
	case "", "stderr":
		log.SetOutput(os.Stderr)
	case "stdout":
		log.SetOutput(os.Stdout)
	default:
		file, err := os.OpenFile(cfg.Output,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("new: could not open log file: %w", err)
		}
		log.SetOutput(file)
	}

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.Warnf("invalid log format '%s', using 'text'", cfg.Format)
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("invalid log level '%s', using 'info'", cfg.Level)
	}
	log.SetLevel(level)

	return log, nil
}

// Discard returns a logger that drops everything written to it. It is
// used when a component is constructed without a logger.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OrDiscard returns log, or a discarding logger if log is nil
func OrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return Discard()
	}
	return log
}
