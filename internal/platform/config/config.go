package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration for the registry.
type Server struct {
	Addr            string
	DatabaseURL     string
	AuditBrokers    []string
	AuditTopic      string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PID_REGISTRY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	auditTopic := os.Getenv("PID_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "pidreg.audit"
	}

	var brokers []string
	if raw := os.Getenv("PID_AUDIT_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	shutdown := 10 * time.Second
	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			shutdown = d
		}
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuditBrokers:    brokers,
		AuditTopic:      auditTopic,
		ShutdownTimeout: shutdown,
	}
}
