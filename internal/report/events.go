package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

const (
	EventLoad   EventType = "load"
	EventSkip   EventType = "skip"
	EventQuery  EventType = "query"
	EventReport EventType = "report"
	EventExport EventType = "export"
	EventError  EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event of a run
type Event struct {
	Timestamp   time.Time         `json:"ts"`
	RunID       string            `json:"run_id"`
	Level       EventLevel        `json:"level"`
	Event       EventType         `json:"event"`
	Query       string            `json:"query,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	ResultCount int               `json:"result_count,omitempty"`
	Path        string            `json:"path,omitempty"`
	Duration    int64             `json:"duration_ms,omitempty"` // in milliseconds
	Error       string            `json:"error,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	runID    string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.NewString()
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s-%s.jsonl", timestamp, runID[:8])
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		runID:    runID,
		minLevel: minLevel,
	}, nil
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.RunID = l.runID

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogLoad logs a dataset load
func (l *EventLogger) LogLoad(path string, courses, skipped int, duration time.Duration) error {
	return l.Log(&Event{
		Level:       LevelInfo,
		Event:       EventLoad,
		Path:        path,
		ResultCount: courses,
		Duration:    duration.Milliseconds(),
		Extra: map[string]string{
			"skipped": fmt.Sprintf("%d", skipped),
		},
	})
}

// LogSkip logs a malformed row dropped in lenient mode
func (l *EventLogger) LogSkip(path string, err error) error {
	return l.Log(&Event{
		Level: LevelWarning,
		Event: EventSkip,
		Path:  path,
		Error: err.Error(),
	})
}

// LogQuery logs one analytical query and the size of its result
func (l *EventLogger) LogQuery(query string, params map[string]string, resultCount int, duration time.Duration, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:       level,
		Event:       EventQuery,
		Query:       query,
		Params:      params,
		ResultCount: resultCount,
		Duration:    duration.Milliseconds(),
		Error:       errMsg,
	})
}

// LogReport logs a written summary report
func (l *EventLogger) LogReport(path string, duration time.Duration) error {
	return l.Log(&Event{
		Level:    LevelInfo,
		Event:    EventReport,
		Path:     path,
		Duration: duration.Milliseconds(),
	})
}

// LogExport logs a SQLite export
func (l *EventLogger) LogExport(path string, courses int, duration time.Duration, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelError
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:       level,
		Event:       EventExport,
		Path:        path,
		ResultCount: courses,
		Duration:    duration.Milliseconds(),
		Error:       errMsg,
	})
}

// LogError logs an error event
func (l *EventLogger) LogError(event EventType, path string, err error) error {
	return l.Log(&Event{
		Level: LevelError,
		Event: event,
		Path:  path,
		Error: err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

// Path returns the path to the event log file
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunID returns the identifier stamped on every event of this run
func (l *EventLogger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// NullLogger returns a no-op event logger
func NullLogger() *EventLogger {
	return nil
}
