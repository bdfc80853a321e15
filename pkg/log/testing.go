// Testing utilities for structured logging.
//
// TestLogger captures log records in memory so tests can verify that
// operations emit the expected events without touching real output.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TestLogger is a Logger implementation that captures all records in an
// in-memory buffer as JSON lines for later inspection.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields map[string]any
}

// NewTestLogger creates a TestLogger with the given minimum level and
// returns it together with the buffer holding its output.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		buffer: buffer,
		level:  level,
		fields: make(map[string]any),
	}, buffer
}

func (l *TestLogger) Debug(msg string, fields ...any) { l.record(LevelDebug, msg, fields) }
func (l *TestLogger) Info(msg string, fields ...any)  { l.record(LevelInfo, msg, fields) }
func (l *TestLogger) Warn(msg string, fields ...any)  { l.record(LevelWarn, msg, fields) }
func (l *TestLogger) Error(msg string, fields ...any) { l.record(LevelError, msg, fields) }

// With returns a new TestLogger sharing the same buffer with extra fields
// pre-populated.
func (l *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields)/2)
	for k, v := range l.fields {
		merged[k] = v
	}
	for i := 0; i+1 < len(fields); i += 2 {
		merged[fieldKey(fields[i])] = fields[i+1]
	}
	return &TestLogger{buffer: l.buffer, level: l.level, fields: merged}
}

// Enabled reports whether records at the given level are captured.
func (l *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= l.level
}

func (l *TestLogger) record(level Level, msg string, fields []any) {
	if level < l.level {
		return
	}
	entry := map[string]any{
		"level":   level.String(),
		"message": msg,
	}
	for k, v := range l.fields {
		entry[k] = normalizeValue(v)
	}
	for i := 0; i+1 < len(fields); i += 2 {
		entry[fieldKey(fields[i])] = normalizeValue(fields[i+1])
	}
	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"marshal_error":%q}`, level.String(), msg, err))
	}
	l.buffer.Write(line)
	l.buffer.WriteByte('\n')
}

// normalizeValue converts values that do not marshal usefully (errors) to
// their string form.
func normalizeValue(v any) any {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

// Contains reports whether any captured record contains the substring.
func (l *TestLogger) Contains(substr string) bool {
	return strings.Contains(l.buffer.String(), substr)
}

// Records parses the captured output back into one map per record.
func (l *TestLogger) Records() ([]map[string]any, error) {
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(l.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("malformed captured record %q: %w", line, err)
		}
		records = append(records, entry)
	}
	return records, nil
}
