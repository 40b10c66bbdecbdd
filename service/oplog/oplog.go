// Package oplog keeps a bounded, queryable in-memory buffer of structured
// operation log entries so that a connected agent can inspect what it (or a
// collaborator) recently did to the shared graph state.
package oplog

import (
	"sync"
	"time"

	"github.com/viant/toolbox"
)

// Level classifies the severity of an operation log entry.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultCapacity bounds the buffer when no capacity is supplied.
const DefaultCapacity = 1000

// Entry is one structured operation record.
type Entry struct {
	Timestamp  time.Time              `json:"timestamp"`
	Level      Level                  `json:"level"`
	Operation  string                 `json:"operation"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	WorkflowID string                 `json:"workflow_id,omitempty"`
}

// Stats aggregates the buffer contents.
type Stats struct {
	Total       int            `json:"total"`
	ByLevel     map[Level]int  `json:"by_level"`
	ByOperation map[string]int `json:"by_operation"`
}

// Log is a mutex-guarded ring buffer of entries. Once capacity is reached,
// the oldest entry is dropped for every new one appended.
type Log struct {
	mu       sync.Mutex
	entries  []*Entry
	capacity int
}

// New creates a log with the given capacity; zero or negative means
// DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Record appends an entry. Empty detail values are dropped so queries stay
// compact.
func (l *Log) Record(level Level, operation, message string, details map[string]interface{}, workflowID string) {
	if len(details) > 0 {
		details = toolbox.DeleteEmptyKeys(details)
	}
	entry := &Entry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Operation:  operation,
		Message:    message,
		Details:    details,
		WorkflowID: workflowID,
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.capacity-1]
	}
	l.entries = append(l.entries, entry)
}

// Debug records a debug-level entry.
func (l *Log) Debug(operation, message string, details map[string]interface{}, workflowID string) {
	l.Record(LevelDebug, operation, message, details, workflowID)
}

// Info records an info-level entry.
func (l *Log) Info(operation, message string, details map[string]interface{}, workflowID string) {
	l.Record(LevelInfo, operation, message, details, workflowID)
}

// Warning records a warning-level entry.
func (l *Log) Warning(operation, message string, details map[string]interface{}, workflowID string) {
	l.Record(LevelWarning, operation, message, details, workflowID)
}

// Error records an error-level entry.
func (l *Log) Error(operation, message string, details map[string]interface{}, workflowID string) {
	l.Record(LevelError, operation, message, details, workflowID)
}

// Recent returns up to count entries in chronological order, optionally
// filtered by level and workflow id (empty filter matches everything).
func (l *Log) Recent(count int, level Level, workflowID string) []*Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	matched := make([]*Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		if level != "" && entry.Level != level {
			continue
		}
		if workflowID != "" && entry.WorkflowID != workflowID {
			continue
		}
		matched = append(matched, entry)
	}
	if count > 0 && len(matched) > count {
		matched = matched[len(matched)-count:]
	}
	return matched
}

// All returns every buffered entry in chronological order.
func (l *Log) All() []*Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Entry{}, l.entries...)
}

// Clear discards every buffered entry.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// Stats aggregates entry counts by level and operation.
func (l *Log) Stats() *Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := &Stats{
		Total:       len(l.entries),
		ByLevel:     make(map[Level]int),
		ByOperation: make(map[string]int),
	}
	for _, entry := range l.entries {
		stats.ByLevel[entry.Level]++
		stats.ByOperation[entry.Operation]++
	}
	return stats
}
