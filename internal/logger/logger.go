// Package logger builds the logrus entry shared by the whole service.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"socialdb/internal/config"
)

// New returns an entry tagged with the service name, writing to stderr.
func New(cfg *config.Config) (*logrus.Entry, error) {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput is New with a custom destination.
func NewWithOutput(cfg *config.Config, out io.Writer) (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	if cfg.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l.WithField("service", cfg.ServiceName), nil
}

// Discard returns an entry that drops everything, for tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
