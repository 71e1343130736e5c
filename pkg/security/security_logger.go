package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventForbiddenAccess    EventType = "forbidden_access"
	EventProfileMissing     EventType = "profile_missing"
	EventValidationFailed   EventType = "validation_failed"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "user_id" or "ip"
	SubjectValue string // hashed for user ids
	IP           string
	UserAgent    string
	RequestID    string
	Path         string
	Details      map[string]interface{}
}

// SecurityLogger writes security events as structured zap records.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultMu     sync.Mutex
	defaultLogger *SecurityLogger
)

// InitSecurityLogger builds the production logger and installs it as default.
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.DPanicLevel))
	if err != nil {
		logger = zap.NewNop()
	}

	sl := NewSecurityLogger(logger, serviceName, environment)
	SetDefaultLogger(sl)
	return sl
}

func NewSecurityLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// DefaultLogger returns the installed logger; before InitSecurityLogger it
// returns a no-op logger so callers never need a nil check.
func DefaultLogger() *SecurityLogger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewSecurityLogger(zap.NewNop(), "hr-dashboard", "development")
	}
	return defaultLogger
}

func SetDefaultLogger(sl *SecurityLogger) {
	defaultMu.Lock()
	defaultLogger = sl
	defaultMu.Unlock()
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	severity := GetSeverity(event.Event)

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields,
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_value", maskValue(event.SubjectType, event.SubjectValue)),
		)
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(severity.zapLevel(), string(event.Event), fields...)
}

// LogAccessDenied records a rejected dashboard request. userID is empty for
// requests that never authenticated.
func (sl *SecurityLogger) LogAccessDenied(ctx context.Context, event EventType, userID, ip, userAgent, requestID, path, reason string) {
	e := SecurityEvent{
		Event:     event,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Path:      path,
		Details:   map[string]interface{}{"reason": reason},
	}
	if userID != "" {
		e.SubjectType = "user_id"
		e.SubjectValue = userID
	} else {
		e.SubjectType = "ip"
		e.SubjectValue = ip
	}
	sl.Log(ctx, e)
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Path:         endpoint,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	if subjectType == "ip" {
		return value
	}
	return HashValue(value)
}
