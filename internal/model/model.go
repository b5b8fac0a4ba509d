package model

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate is a point asserted by a client or produced by a location sensor.
type Coordinate struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// TouristProfile represents the tourist_profiles table. One row per verified
// principal; never deleted by this service.
type TouristProfile struct {
	ID              uuid.UUID `json:"id"`
	PrincipalID     string    `json:"principal_id"`
	FullName        string    `json:"full_name"`
	Country         string    `json:"country"`
	Phone           string    // Plaintext (transient, not stored in DB)
	EncryptedPhone  []byte    // Stored in DB
	PhoneIV         []byte    // Stored in DB
	SafetyScore     int       `json:"safety_score"`
	TrackingEnabled bool      `json:"location_tracking_enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EmergencyContact represents the emergency_contacts table. Rows are managed
// by the external profile workflow; this service only reads them for fan-out.
type EmergencyContact struct {
	ID             uuid.UUID `json:"id"`
	TouristID      uuid.UUID `json:"tourist_id"`
	Name           string    `json:"name"`
	Phone          string    // Plaintext (transient, not stored in DB)
	EncryptedPhone []byte    // Stored in DB
	PhoneIV        []byte    // Stored in DB
	Relationship   string    `json:"relationship"`
	IsPrimary      bool      `json:"is_primary"`
	CreatedAt      time.Time `json:"created_at"`
}

// PanicAlert represents the panic_alerts table.
type PanicAlert struct {
	ID           uuid.UUID     `json:"id"`
	TouristID    uuid.UUID     `json:"tourist_id"`
	Location     Coordinate    `json:"location"`
	AlertType    AlertType     `json:"alert_type"`
	Description  string        `json:"description"`
	Status       AlertStatus   `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	ResolvedAt   *time.Time    `json:"resolved_at,omitempty"`
	ResponseTime time.Duration `json:"response_time,omitempty"`
}

// IncidentReport represents the incident_reports table.
type IncidentReport struct {
	ID           uuid.UUID    `json:"id"`
	TouristID    uuid.UUID    `json:"tourist_id"`
	Location     Coordinate   `json:"location"`
	IncidentType IncidentType `json:"incident_type"`
	Description  string       `json:"description"`
	Severity     Severity     `json:"severity"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// SafetyCheckin represents the safety_checkins table. Immutable once written.
type SafetyCheckin struct {
	ID        uuid.UUID   `json:"id"`
	TouristID uuid.UUID   `json:"tourist_id"`
	Location  *Coordinate `json:"location,omitempty"`
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// NotificationOutcome represents the notification_outcomes table. Append-only;
// unique on (alert_id, channel_id), which is the dispatch de-duplication guard.
type NotificationOutcome struct {
	AlertID   uuid.UUID `json:"alert_id"`
	ChannelID string    `json:"channel_id"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SafeZone represents the safe_zones reference table (read-only here).
type SafeZone struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	ZoneType     string     `json:"zone_type"`
	Location     Coordinate `json:"location"`
	RadiusMeters int        `json:"radius_meters"`
	Description  string     `json:"description,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// Helpline represents the helplines reference table (read-only here).
type Helpline struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone_number"`
	Category    string    `json:"category"`
	Region      string    `json:"region,omitempty"`
	Language    string    `json:"language,omitempty"`
	Available24 bool      `json:"available_24_7"`
	IsActive    bool      `json:"is_active"`
}

// SafetyTip represents the safety_tips reference table (read-only here).
type SafetyTip struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Category string    `json:"category"`
	Region   string    `json:"region,omitempty"`
	Language string    `json:"language,omitempty"`
	Priority int       `json:"priority"`
	IsActive bool      `json:"is_active"`
}
