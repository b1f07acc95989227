package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Level represents log level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
}

const colorReset = "\033[0m"

// Config holds logger configuration
type Config struct {
	Level       Level
	Output      io.Writer
	JSONFormat  bool
	EnableColor bool
	ShowCaller  bool
	TimeFormat  string
	ServiceName string
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT, LOG_COLOR and SERVICE_NAME.
// CloudWatch does not render ANSI colors, so color is off inside Lambda.
func DefaultConfig() *Config {
	level := INFO
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level = ParseLevel(lvl)
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "event-announcer"
	}

	inLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return &Config{
		Level:       level,
		Output:      os.Stdout,
		JSONFormat:  os.Getenv("LOG_FORMAT") == "json",
		EnableColor: os.Getenv("LOG_COLOR") != "false" && !inLambda,
		ShowCaller:  true,
		TimeFormat:  "2006-01-02T15:04:05.000Z07:00",
		ServiceName: service,
	}
}

// Logger is a structured logger. A Logger is immutable once built; With*
// methods return children.
type Logger struct {
	config *Config
	fields map[string]interface{}
	mu     *sync.Mutex
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Service   string                 `json:"service,omitempty"`
	Caller    string                 `json:"caller,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// New creates a new logger with given config
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	return &Logger{
		config: config,
		fields: map[string]interface{}{},
		mu:     &sync.Mutex{},
	}
}

// Default returns the default logger singleton
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(nil)
	})
	return defaultLogger
}

func (l *Logger) clone(extra int) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+extra)
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{config: l.config, fields: fields, mu: l.mu}
}

// With creates a child logger with one additional field
func (l *Logger) With(key string, value interface{}) *Logger {
	child := l.clone(1)
	child.fields[key] = value
	return child
}

// WithFields creates a child logger with multiple additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	child := l.clone(len(fields))
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

// WithError adds error field to logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error())
}

// WithContext attaches the Lambda request id when the invocation carries one
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return l.With("request_id", lc.AwsRequestID)
	}
	return l
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log(DEBUG, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log(INFO, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log(WARN, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log(ERROR, msg, args...) }

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	if level < l.config.Level {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(l.config.TimeFormat),
		Level:     levelNames[level],
		Message:   msg,
		Service:   l.config.ServiceName,
	}

	if l.config.ShowCaller {
		if _, file, line, ok := runtime.Caller(2); ok {
			entry.Caller = fmt.Sprintf("%s:%d", shortenPath(file), line)
		}
	}

	if len(l.fields) > 0 {
		entry.Fields = l.fields
	}

	var out string
	if l.config.JSONFormat {
		data, err := json.Marshal(entry)
		if err != nil {
			// Logging must never fail the caller; fall back to text.
			out = l.formatText(level, entry)
		} else {
			out = string(data)
		}
	} else {
		out = l.formatText(level, entry)
	}

	l.mu.Lock()
	fmt.Fprintln(l.config.Output, out)
	l.mu.Unlock()
}

func (l *Logger) formatText(level Level, entry LogEntry) string {
	var sb strings.Builder

	if l.config.EnableColor {
		sb.WriteString(levelColors[level])
	}
	sb.WriteString(entry.Timestamp)
	sb.WriteString(fmt.Sprintf(" [%-5s] ", entry.Level))
	if l.config.EnableColor {
		sb.WriteString(colorReset)
	}

	if entry.Caller != "" {
		sb.WriteString(fmt.Sprintf("[%s] ", entry.Caller))
	}
	sb.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" |")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf(" %s=%v", k, entry.Fields[k]))
		}
	}

	return sb.String()
}

// ============================================================
// Invocation Logger
// ============================================================

// InvocationLog describes one handled request
type InvocationLog struct {
	Method   string
	Path     string
	Route    string
	Status   int
	Duration time.Duration
}

// LogInvocation logs a completed invocation at a level derived from its status
func (l *Logger) LogInvocation(inv InvocationLog) {
	level := INFO
	if inv.Status >= 500 {
		level = ERROR
	} else if inv.Status >= 400 {
		level = WARN
	}

	l.WithFields(map[string]interface{}{
		"method":      inv.Method,
		"path":        inv.Path,
		"route":       inv.Route,
		"status":      inv.Status,
		"duration_ms": inv.Duration.Milliseconds(),
	}).log(level, "%s %s -> %d (%s)", inv.Method, inv.Path, inv.Status, inv.Duration)
}

// ============================================================
// Notification Logger
// ============================================================

// NotificationLog describes one call to the notification service
type NotificationLog struct {
	Operation string // publish, subscribe, unsubscribe
	Topic     string
	ID        string // message id or subscription arn
	Success   bool
	Error     string
}

// LogNotification logs a gateway operation outcome
func (l *Logger) LogNotification(n NotificationLog) {
	level := INFO
	if !n.Success {
		level = ERROR
	}

	fields := map[string]interface{}{
		"operation": n.Operation,
		"success":   n.Success,
	}
	if n.Topic != "" {
		fields["topic"] = n.Topic
	}
	if n.ID != "" {
		fields["id"] = n.ID
	}
	if n.Error != "" {
		fields["error"] = n.Error
	}

	l.WithFields(fields).log(level, "[notify] %s success=%t", n.Operation, n.Success)
}

// ============================================================
// Helper functions
// ============================================================

// ParseLevel maps a level name to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func shortenPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return path
}

// ============================================================
// Package-level convenience functions
// ============================================================

func Info(msg string, args ...interface{}) { Default().Info(msg, args...) }
