// Package logging routes the standard logger to a rotating file. The
// terminal belongs to the UI, so nothing is ever logged to stdout.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"bookshelf/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the log writer described by cfg. The returned closer
// flushes and closes the file.
func Setup(cfg *config.Config) (io.Closer, error) {
	if !cfg.Log.Enabled {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	path := cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return nopCloser{}, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("Logging to %s", path)

	return w, nil
}
