package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newBufLogger(level string, buf *bytes.Buffer) *Logger {
	return New(Config{
		Level:  level,
		Format: "json",
		Output: buf,
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"debug level", Config{Level: "debug", Format: "json", ServiceName: "envd"}},
		{"text format", Config{Level: "info", Format: "text", ServiceName: "envd"}},
		{"empty config", Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if New(tt.config) == nil {
				t.Fatal("expected logger to be non-nil")
			}
		})
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
		ServiceName: "envd",
	})

	log.Info("env validated", "op", "env.ValidateServer", "keys", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if entry["msg"] != "env validated" {
		t.Errorf("expected msg='env validated', got %v", entry["msg"])
	}
	if entry["op"] != "env.ValidateServer" {
		t.Errorf("expected op='env.ValidateServer', got %v", entry["op"])
	}
	if entry["service"] != "envd" {
		t.Errorf("expected service='envd', got %v", entry["service"])
	}
	if _, ok := entry["time"].(string); !ok {
		t.Errorf("expected time to be a formatted string, got %T", entry["time"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "TEXT", Output: &buf})

	log.Info("hello", "key", "PORT")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Errorf("expected text output, got JSON: %s", out)
	}
	if !strings.Contains(out, "key=PORT") {
		t.Errorf("expected key=PORT in output, got: %s", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logFn     func(*Logger)
		shouldLog bool
	}{
		{"info level logs info", "info", func(l *Logger) { l.Info("test") }, true},
		{"info level does not log debug", "info", func(l *Logger) { l.Debug("test") }, false},
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug("test") }, true},
		{"warn level does not log info", "warn", func(l *Logger) { l.Info("test") }, false},
		{"error level logs error", "error", func(l *Logger) { l.Error("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFn(newBufLogger(tt.level, &buf))

			if hasOutput := buf.Len() > 0; hasOutput != tt.shouldLog {
				t.Errorf("expected shouldLog=%v, got hasOutput=%v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(context.Background(), ParseLevel("error")) {
		t.Error("expected discard logger to be disabled at error level")
	}
	log.Error("dropped")
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	log := newBufLogger("info", &buf)

	log.WithRequestID("req-123").
		WithComponent("httpapi").
		WithFields(map[string]any{"key": "NEXT_PUBLIC_API"}).
		Info("test message")

	out := buf.String()
	for _, want := range []string{"req-123", "httpapi", "NEXT_PUBLIC_API"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := newBufLogger("info", &buf)

	if log.FromContext(context.Background()) != log {
		t.Error("expected bare context to return the same logger")
	}

	ctx := ContextWithRequestID(context.Background(), "req-abc")
	log.FromContext(ctx).Info("test message")

	if !strings.Contains(buf.String(), "req-abc") {
		t.Errorf("expected output to contain request_id, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{" info ", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if level := ParseLevel(tt.input); level.String() != tt.expected {
				t.Errorf("ParseLevel(%q) = %s, expected %s", tt.input, level.String(), tt.expected)
			}
		})
	}
}
