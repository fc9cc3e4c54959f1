package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity classifies a user-visible notification.
type Severity string

// Severity levels for notifications.
const (
	// SeveritySuccess reports a completed action.
	SeveritySuccess Severity = "success"
	// SeverityError reports a failed action or backend error.
	SeverityError Severity = "error"
	// SeverityWarning reports something the user should review.
	SeverityWarning Severity = "warning"
	// SeverityInfo is informational feedback.
	SeverityInfo Severity = "info"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// ParseSeverity converts a string to a Severity value.
// The "alert-" prefix used by older frontends is accepted.
// Returns the severity and true if valid, or SeveritySuccess and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "alert-")
	sev := Severity(s)
	if !sev.Valid() {
		return SeveritySuccess, false
	}
	return sev, true
}
