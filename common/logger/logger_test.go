package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

func newTestLogger(buf *bytes.Buffer, jsonFormat bool) *Logger {
	return New(&Config{
		Level:      DEBUG,
		Output:     buf,
		JSONFormat: jsonFormat,
		TimeFormat: time.RFC3339,
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Error", ERROR},
		{"nonsense", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: WARN, Output: &buf, TimeFormat: time.RFC3339})

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("INFO should be filtered at WARN level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("WARN should be written")
	}
}

func TestJSONOutput_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, true).With("route", "create-event").WithError(errors.New("boom"))

	l.Error("publish failed for %s", "topic")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry.Level != "ERROR" {
		t.Errorf("Level = %s", entry.Level)
	}
	if entry.Message != "publish failed for topic" {
		t.Errorf("Message = %s", entry.Message)
	}
	if entry.Fields["route"] != "create-event" || entry.Fields["error"] != "boom" {
		t.Errorf("Fields = %v", entry.Fields)
	}
}

func TestWith_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, false)
	_ = parent.With("child", true)

	parent.Info("parent line")
	if strings.Contains(buf.String(), "child=") {
		t.Errorf("parent picked up child field: %s", buf.String())
	}
}

func TestWithContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})

	newTestLogger(&buf, false).WithContext(ctx).Info("hello")

	if !strings.Contains(buf.String(), "request_id=req-123") {
		t.Errorf("missing request id: %s", buf.String())
	}
}

func TestLogInvocation_Level(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{200, "[INFO ]"},
		{400, "[WARN ]"},
		{500, "[ERROR]"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		newTestLogger(&buf, false).LogInvocation(InvocationLog{
			Method: "POST", Path: "/events", Route: "create-event", Status: tt.status, Duration: 3 * time.Millisecond,
		})
		if !strings.Contains(buf.String(), tt.level) {
			t.Errorf("status %d: got %s, want level %s", tt.status, buf.String(), tt.level)
		}
	}
}

func TestLogNotification(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, false).LogNotification(NotificationLog{
		Operation: "publish", Topic: "arn:topic", ID: "msg-1", Success: true,
	})

	out := buf.String()
	for _, want := range []string{"[notify] publish success=true", "id=msg-1", "topic=arn:topic"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
