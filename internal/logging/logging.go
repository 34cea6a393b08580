// Package logging configures the logrus standard logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Julian-Alberts/mc-map-reader/internal/config"
)

// Setup applies cfg to logger. Without a log file, entries go to stderr as
// text; with one, they go to a rotated file as JSON. The returned closer
// releases the file.
func Setup(logger *logrus.Logger, cfg config.Log) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
