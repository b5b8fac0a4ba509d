package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// EventFilter narrows event listings. Nil/empty fields are not applied.
type EventFilter struct {
	TouristID *uuid.UUID
	Status    string
	Severity  model.Severity
	From      *time.Time
	To        *time.Time
}

// CreateIncident inserts an incident report with status reported and a
// server-assigned creation timestamp.
func (r *Repository) CreateIncident(ctx context.Context, inc *model.IncidentReport) error {
	inc.ID = uuid.New()
	inc.Status = model.IncidentReported
	inc.CreatedAt = time.Now()
	inc.UpdatedAt = inc.CreatedAt

	query := `INSERT INTO incident_reports (id, tourist_id, location_lat, location_lng, location_name, incident_type, description, severity, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, inc.ID, inc.TouristID, inc.Location.Lat, inc.Location.Lng,
		inc.Location.Name, inc.IncidentType, inc.Description, inc.Severity, inc.Status,
		inc.CreatedAt, inc.UpdatedAt)
	return mapInsertErr(err)
}

// CreateCheckin inserts a safe-status check-in. Coordinate is optional.
func (r *Repository) CreateCheckin(ctx context.Context, c *model.SafetyCheckin) error {
	c.ID = uuid.New()
	c.Status = model.CheckinSafe
	c.CreatedAt = time.Now()

	var lat, lng sql.NullFloat64
	var name sql.NullString
	if c.Location != nil {
		lat = sql.NullFloat64{Float64: c.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: c.Location.Lng, Valid: true}
		name = sql.NullString{String: c.Location.Name, Valid: true}
	}

	query := `INSERT INTO safety_checkins (id, tourist_id, location_lat, location_lng, location_name, message, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.TouristID, lat, lng, name, c.Message, c.Status, c.CreatedAt)
	return mapInsertErr(err)
}

// ListIncidents returns incident reports matching the filter, newest first.
func (r *Repository) ListIncidents(ctx context.Context, f EventFilter) ([]model.IncidentReport, error) {
	query := `SELECT id, tourist_id, location_lat, location_lng, location_name, incident_type, description, severity, status, created_at, updated_at
              FROM incident_reports WHERE 1=1`
	args := []any{}
	if f.TouristID != nil {
		args = append(args, *f.TouristID)
		query += fmt.Sprintf(" AND tourist_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Severity != "" {
		args = append(args, f.Severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []model.IncidentReport
	for rows.Next() {
		var inc model.IncidentReport
		if err := rows.Scan(&inc.ID, &inc.TouristID, &inc.Location.Lat, &inc.Location.Lng,
			&inc.Location.Name, &inc.IncidentType, &inc.Description, &inc.Severity,
			&inc.Status, &inc.CreatedAt, &inc.UpdatedAt); err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

// ListCheckins returns safe-status check-ins matching the filter, newest
// first. Severity does not apply to check-ins and is ignored.
func (r *Repository) ListCheckins(ctx context.Context, f EventFilter) ([]model.SafetyCheckin, error) {
	query := `SELECT id, tourist_id, location_lat, location_lng, location_name, message, status, created_at
              FROM safety_checkins WHERE 1=1`
	args := []any{}
	if f.TouristID != nil {
		args = append(args, *f.TouristID)
		query += fmt.Sprintf(" AND tourist_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []model.SafetyCheckin
	for rows.Next() {
		var c model.SafetyCheckin
		var lat, lng sql.NullFloat64
		var name sql.NullString
		if err := rows.Scan(&c.ID, &c.TouristID, &lat, &lng, &name, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			c.Location = &model.Coordinate{Lat: lat.Float64, Lng: lng.Float64, Name: name.String}
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}
