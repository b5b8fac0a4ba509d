package model

// EventKind distinguishes the three safety event families the ingestion
// service accepts.
type EventKind string

const (
	KindPanic    EventKind = "panic"
	KindIncident EventKind = "incident"
	KindCheckin  EventKind = "checkin"
)

// AlertStatus is the panic alert lifecycle state. Transitions only move
// forward: active -> acknowledged -> resolved, or active -> resolved.
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// ParseAlertStatus returns the status for s, or "" if s names no known state.
func ParseAlertStatus(s string) AlertStatus {
	switch AlertStatus(s) {
	case AlertActive, AlertAcknowledged, AlertResolved:
		return AlertStatus(s)
	}
	return ""
}

// AlertType categorizes what triggered a panic alert.
type AlertType string

const (
	AlertPanicButton AlertType = "panic_button"
	AlertMedical     AlertType = "medical"
	AlertTheft       AlertType = "theft"
	AlertHarassment  AlertType = "harassment"
	AlertOther       AlertType = "other"
)

// ParseAlertType maps free-form input to a closed alert type. Empty input
// defaults to panic_button (the original client sends that value); anything
// unrecognized maps to other.
func ParseAlertType(s string) AlertType {
	switch AlertType(s) {
	case "":
		return AlertPanicButton
	case AlertPanicButton, AlertMedical, AlertTheft, AlertHarassment, AlertOther:
		return AlertType(s)
	}
	return AlertOther
}

// IncidentType categorizes incident reports.
type IncidentType string

const (
	IncidentTheft           IncidentType = "theft"
	IncidentScam            IncidentType = "scam"
	IncidentHarassment      IncidentType = "harassment"
	IncidentAccident        IncidentType = "accident"
	IncidentMedical         IncidentType = "medical"
	IncidentNaturalDisaster IncidentType = "natural_disaster"
	IncidentOther           IncidentType = "other"
)

// ParseIncidentType maps free-form input to a closed incident type; unknown
// values map to other. Empty input is not defaulted here — incident_type is a
// required field and the ingestion service rejects it before parsing.
func ParseIncidentType(s string) IncidentType {
	switch IncidentType(s) {
	case IncidentTheft, IncidentScam, IncidentHarassment, IncidentAccident,
		IncidentMedical, IncidentNaturalDisaster, IncidentOther:
		return IncidentType(s)
	}
	return IncidentOther
}

// Severity grades incident reports.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity maps input to a severity, defaulting empty input to medium.
// Unknown values return "" so callers can reject them.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case "":
		return SeverityMedium
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s)
	}
	return ""
}

const (
	// IncidentReported is the initial incident report status; later states
	// belong to the external review workflow.
	IncidentReported = "reported"

	// CheckinSafe is the only status a safety check-in is written with.
	CheckinSafe = "safe"

	// DefaultSafetyScore is assigned to profiles created on first resolve.
	DefaultSafetyScore = 85
)
