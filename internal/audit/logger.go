// Package audit writes an append-only JSONL trail of processing events so
// every data transformation is traceable after the fact.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one audit trail entry.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id"`
	Type      string         `json:"event_type"`
	Data      map[string]any `json:"data,omitempty"`
}

// Well-known event types.
const (
	EventRunStarted       = "run_started"
	EventRecordNormalized = "record_normalized"
	EventRecordFailed     = "record_failed"
	EventBatchProfiled    = "batch_profiled"
	EventRunCompleted     = "run_completed"
)

// Logger appends events to a JSONL file. Safe for concurrent use; every run
// gets a fresh UUID so interleaved runs stay distinguishable in one file.
type Logger struct {
	mu    sync.Mutex
	file  *os.File
	runID string
}

// NewLogger opens (or creates) the audit log at path, creating parent
// directories as needed.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return &Logger{file: f, runID: uuid.NewString()}, nil
}

// RunID returns this logger's run identifier.
func (l *Logger) RunID() string {
	return l.runID
}

// Log appends one event. Marshal or write failures are returned, not
// swallowed; the audit trail is a compliance artifact.
func (l *Logger) Log(eventType string, data map[string]any) error {
	event := Event{
		Timestamp: time.Now().UTC(),
		RunID:     l.runID,
		Type:      eventType,
		Data:      data,
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	return l.file.Close()
}

// ReadEvents loads events from an audit log, optionally filtered by type
// (empty eventType returns everything). Blank lines are skipped.
func ReadEvents(path, eventType string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("corrupt audit entry: %w", err)
		}
		if eventType == "" || event.Type == eventType {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return events, nil
}
