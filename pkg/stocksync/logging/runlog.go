package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Separator opens every run section in the log file.
var Separator = strings.Repeat("=", 80)

// RunLog is a logger for one update run that writes to the console and
// appends to update_log_YYYYMMDD.txt.
type RunLog struct {
	Logger zerolog.Logger
	ID     string
	Path   string

	file *os.File
}

// LogFileName returns the daily log file name for now.
func LogFileName(now time.Time) string {
	return fmt.Sprintf("update_log_%s.txt", now.Format("20060102"))
}

// OpenRunLog opens (or creates) the daily log file in dir and returns a
// logger writing to both console and file. console may be nil.
func OpenRunLog(dir string, now time.Time, console io.Writer) (*RunLog, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, LogFileName(now))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "\n%s\n", Separator); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write log file: %w", err)
	}

	writers := []io.Writer{consoleWriter(f, true)}
	if console != nil {
		writers = append(writers, console)
	}

	id := uuid.NewString()
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Str("run_id", id).
		Logger()

	return &RunLog{
		Logger: logger,
		ID:     id,
		Path:   path,
		file:   f,
	}, nil
}

// Fatal logs err as the failure of this run. The caller still owns Close
// and the process exit.
func (l *RunLog) Fatal(err error) {
	l.Logger.Error().Err(err).Msg("run failed")
}

// Close flushes the log file to disk and closes it.
func (l *RunLog) Close() error {
	if l.file == nil {
		return nil
	}
	syncErr := l.file.Sync()
	closeErr := l.file.Close()
	l.file = nil
	if syncErr != nil {
		return syncErr
	}
	return closeErr
}
