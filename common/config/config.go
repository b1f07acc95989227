package config

import (
	"os"
	"strings"
)

// FallbackTopicARN is used when SNS_TOPIC_ARN is unset.
// Deployments must set SNS_TOPIC_ARN; this value only keeps the handler functional.
const FallbackTopicARN = "arn:aws:sns:us-east-1:123456789012:event-announcements"

// Backend names for NOTIFY_BACKEND
const (
	BackendSNS    = "sns"
	BackendMemory = "memory"
)

// Config holds process configuration read from the environment
type Config struct {
	TopicARN     string
	TopicFromEnv bool
	Region       string
	EventsDSN    string
	Backend      string
	Port         string
}

// Load reads configuration from the environment.
// It never fails: missing values fall back to defaults.
func Load() *Config {
	cfg := &Config{
		Region:    getEnv("AWS_REGION", ""),
		EventsDSN: getEnv("EVENTS_DB_DSN", ""),
		Backend:   BackendSNS,
		Port:      getEnv("PORT", "8080"),
	}

	if arn := strings.TrimSpace(os.Getenv("SNS_TOPIC_ARN")); arn != "" {
		cfg.TopicARN = arn
		cfg.TopicFromEnv = true
	} else {
		cfg.TopicARN = FallbackTopicARN
	}

	if backend, ok := NormalizeBackend(os.Getenv("NOTIFY_BACKEND")); ok {
		cfg.Backend = backend
	}

	return cfg
}

// NormalizeBackend lower-cases and trims a backend name and reports whether
// it is one of BackendSNS or BackendMemory
func NormalizeBackend(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case BackendSNS, BackendMemory:
		return name, true
	default:
		return "", false
	}
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
