package model

// Severity grades a user-facing notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a transient, client-only message. The ID exists only for
// dismissal; notifications are never updated in place.
type Notification struct {
	ID       string
	Message  string
	Severity Severity
}
