package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// TestLogBuffer collects JSON log lines written by concurrent goroutines.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// LogEntry is one decoded log line. Attrs holds every key other than
// time, level and msg.
type LogEntry struct {
	Level string
	Msg   string
	Attrs map[string]any
}

// Write implements io.Writer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Entries decodes the buffer, one JSON object per line.
func (b *TestLogBuffer) Entries() ([]LogEntry, error) {
	var entries []LogEntry
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		attrs := map[string]any{}
		if err := json.Unmarshal([]byte(line), &attrs); err != nil {
			return nil, err
		}
		entry := LogEntry{Attrs: attrs}
		entry.Level, _ = attrs[slog.LevelKey].(string)
		entry.Msg, _ = attrs[slog.MessageKey].(string)
		delete(attrs, slog.LevelKey)
		delete(attrs, slog.MessageKey)
		delete(attrs, slog.TimeKey)
		entries = append(entries, entry)
	}
	return entries, nil
}

// Find returns the first entry with the given message.
func (b *TestLogBuffer) Find(msg string) (LogEntry, bool) {
	entries, err := b.Entries()
	if err != nil {
		return LogEntry{}, false
	}
	for _, e := range entries {
		if e.Msg == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}

// NewTestLogger returns a debug-level JSON logger writing into a fresh buffer.
// It does not touch the process-wide default logger.
func NewTestLogger() (*slog.Logger, *TestLogBuffer) {
	buf := &TestLogBuffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
