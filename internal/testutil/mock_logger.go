// Package testutil provides common test doubles for the research engine.
package testutil

import (
	"sync"

	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger for testing purposes.
// It records log messages and can be used to verify logging behavior.
// Loggers derived through With or Named share the parent's buffer and
// prepend their fields to every message.
type MockLogger struct {
	store  *messageStore
	fields []logging.Field
	name   string
}

type messageStore struct {
	mu       sync.Mutex
	messages []LogMessage
}

// LogMessage represents a single log entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Logger  string
	Message string
	Fields  []logging.Field
}

// Field returns the value of the named field and whether it was present.
func (m LogMessage) Field(key string) (interface{}, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// NewMockLogger creates a new MockLogger instance.
func NewMockLogger() *MockLogger {
	return &MockLogger{store: &messageStore{}}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	all := make([]logging.Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)

	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.messages = append(m.store.messages, LogMessage{
		Level:   level,
		Logger:  m.name,
		Message: msg,
		Fields:  all,
	})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) {
	m.log(logging.LevelDebug, msg, fields)
}

func (m *MockLogger) Info(msg string, fields ...logging.Field) {
	m.log(logging.LevelInfo, msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...logging.Field) {
	m.log(logging.LevelWarn, msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...logging.Field) {
	m.log(logging.LevelError, msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields ...logging.Field) {
	m.log("fatal", msg, fields)
}

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	child := *m
	child.fields = append(append([]logging.Field(nil), m.fields...), fields...)
	return &child
}

func (m *MockLogger) Named(name string) logging.Logger {
	child := *m
	if m.name != "" {
		name = m.name + "." + name
	}
	child.name = name
	return &child
}

// GetMessages returns a copy of all logged messages.
func (m *MockLogger) GetMessages() []LogMessage {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	result := make([]LogMessage, len(m.store.messages))
	copy(result, m.store.messages)
	return result
}

// MessagesAt returns the logged messages of the given level.
func (m *MockLogger) MessagesAt(level string) []LogMessage {
	var out []LogMessage
	for _, msg := range m.GetMessages() {
		if msg.Level == level {
			out = append(out, msg)
		}
	}
	return out
}

// Clear removes all logged messages.
func (m *MockLogger) Clear() {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.messages = m.store.messages[:0]
}

// HasMessage checks if a message with the given level and content was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	for _, logged := range m.GetMessages() {
		if logged.Level == level && logged.Message == msg {
			return true
		}
	}
	return false
}
