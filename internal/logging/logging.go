// Package logging builds the file-backed logger. The terminal belongs to the
// TUI, so nothing is written to stdout.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"agentchat/internal/config"
)

// New returns a logger writing to cfg.Log.File, or to agentchat.log in the
// state directory when no file is configured. The returned closer releases
// the file.
func New(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	path := cfg.Log.File
	if path == "" {
		dir, err := config.StateDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "agentchat.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(f)

	return logger, f, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
