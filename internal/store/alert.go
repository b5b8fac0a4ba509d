package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// CreateAlert inserts a panic alert with status active and a server-assigned
// creation timestamp.
func (r *Repository) CreateAlert(ctx context.Context, a *model.PanicAlert) error {
	a.ID = uuid.New()
	a.Status = model.AlertActive
	a.CreatedAt = time.Now()

	query := `INSERT INTO panic_alerts (id, tourist_id, location_lat, location_lng, location_name, alert_type, description, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.TouristID, a.Location.Lat, a.Location.Lng,
		a.Location.Name, a.AlertType, a.Description, a.Status, a.CreatedAt)
	return mapInsertErr(err)
}

const alertColumns = `id, tourist_id, location_lat, location_lng, location_name, alert_type, description, status, created_at, resolved_at, response_time_seconds`

func scanAlertRow(scan func(dest ...any) error) (*model.PanicAlert, error) {
	a := &model.PanicAlert{}
	var responseSeconds sql.NullInt64
	err := scan(&a.ID, &a.TouristID, &a.Location.Lat, &a.Location.Lng, &a.Location.Name,
		&a.AlertType, &a.Description, &a.Status, &a.CreatedAt, &a.ResolvedAt, &responseSeconds)
	if err != nil {
		return nil, err
	}
	if responseSeconds.Valid {
		a.ResponseTime = time.Duration(responseSeconds.Int64) * time.Second
	}
	return a, nil
}

// GetAlertByID looks up a panic alert, read-through cached. Returns
// (nil, nil) when absent.
func (r *Repository) GetAlertByID(ctx context.Context, id uuid.UUID) (*model.PanicAlert, error) {
	key := fmt.Sprintf("alert:%s", id.String())
	if data, ok := r.cacheGet(ctx, key); ok {
		a := &model.PanicAlert{}
		if err := json.Unmarshal(data, a); err == nil {
			return a, nil
		}
	}

	query := `SELECT ` + alertColumns + ` FROM panic_alerts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	a, err := scanAlertRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(a); err == nil {
		r.cacheSet(ctx, key, data, alertCacheTTL)
	}
	return a, nil
}

// AcknowledgeAlert transitions an alert from active to acknowledged. Returns
// the number of rows updated; 0 means the alert was absent or not active.
// The status guard in the WHERE clause is what makes the transition safe
// under concurrent lifecycle calls.
func (r *Repository) AcknowledgeAlert(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `UPDATE panic_alerts SET status = $2 WHERE id = $1 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, id, model.AlertAcknowledged, model.AlertActive)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.cacheDel(ctx, fmt.Sprintf("alert:%s", id.String()))
	return rows, nil
}

// ResolveAlert transitions an alert to resolved from active or acknowledged,
// recording the resolution time and computed response time. Returns rows
// updated; 0 means absent or already resolved.
func (r *Repository) ResolveAlert(ctx context.Context, id uuid.UUID, resolvedAt time.Time, responseTime time.Duration) (int64, error) {
	query := `UPDATE panic_alerts SET status = $2, resolved_at = $3, response_time_seconds = $4
              WHERE id = $1 AND status IN ($5, $6)`
	res, err := r.db.ExecContext(ctx, query, id, model.AlertResolved, resolvedAt,
		int64(responseTime/time.Second), model.AlertActive, model.AlertAcknowledged)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.cacheDel(ctx, fmt.Sprintf("alert:%s", id.String()))
	return rows, nil
}

// ExistingOutcomes returns the recorded notification outcomes for an alert,
// keyed by channel id.
func (r *Repository) ExistingOutcomes(ctx context.Context, alertID uuid.UUID) (map[string]model.NotificationOutcome, error) {
	query := `SELECT alert_id, channel_id, delivered, error, created_at
              FROM notification_outcomes WHERE alert_id = $1`
	rows, err := r.db.QueryContext(ctx, query, alertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outcomes := make(map[string]model.NotificationOutcome)
	for rows.Next() {
		var o model.NotificationOutcome
		if err := rows.Scan(&o.AlertID, &o.ChannelID, &o.Delivered, &o.Error, &o.CreatedAt); err != nil {
			return nil, err
		}
		outcomes[o.ChannelID] = o
	}
	return outcomes, rows.Err()
}

// InsertOutcome records one per-channel delivery outcome. The unique
// constraint on (alert_id, channel_id) is the sole de-duplication guard
// across concurrent dispatcher instances; a losing insert reports false
// without error.
func (r *Repository) InsertOutcome(ctx context.Context, o *model.NotificationOutcome) (bool, error) {
	o.CreatedAt = time.Now()
	query := `INSERT INTO notification_outcomes (alert_id, channel_id, delivered, error, created_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (alert_id, channel_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, o.AlertID, o.ChannelID, o.Delivered, o.Error, o.CreatedAt)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ListAlerts returns panic alerts matching the filter, newest first.
func (r *Repository) ListAlerts(ctx context.Context, f EventFilter) ([]model.PanicAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM panic_alerts WHERE 1=1`
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

	var alerts []model.PanicAlert
	for rows.Next() {
		a, err := scanAlertRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}
