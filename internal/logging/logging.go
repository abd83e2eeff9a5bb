package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Recent holds the latest log lines for the terminal UI log pane.
var Recent = NewRing(500)

const (
	logFileName = "coffeehub.log"
	maxBackups  = 10
)

// Init initializes the logging system, writing logs to <logDir>/coffeehub.log.
// The previous log file is rolled over to coffeehub.log.1 on every call.
// Uses text format for human readability.
func Init(logDir string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, logFileName)
	if err := rollover(logPath, maxBackups); err != nil {
		return fmt.Errorf("failed to roll over %s: %w", logPath, err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	out := io.MultiWriter(file, Recent)
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output (used by the drivers) to the same file
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return nil
}

// rollover shifts path.N to path.N+1 (dropping the oldest) and moves path to
// path.1. A missing or empty current log is left alone.
func rollover(path string, backups int) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	oldest := fmt.Sprintf("%s.%d", path, backups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := backups - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", path, i)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := os.Rename(src, fmt.Sprintf("%s.%d", path, i+1)); err != nil {
			return err
		}
	}
	return os.Rename(path, path+".1")
}
