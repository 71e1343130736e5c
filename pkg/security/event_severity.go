package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from EventType, never supplied by the caller.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the severity of each event type
var EventSeverityMap = map[EventType]Severity{
	EventValidationFailed:   SeverityINFO,
	EventProfileMissing:     SeverityMEDIUM,
	EventUnauthorizedAccess: SeverityMEDIUM,
	EventRateLimitTriggered: SeverityMEDIUM,
	// an authenticated user probing another role's data
	EventForbiddenAccess: SeverityHIGH,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
