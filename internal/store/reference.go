package store

import (
	"context"
	"fmt"

	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// Reference data (tips, zones, helplines) is owned by external content
// management; this repository only reads it.

// ListSafetyTips returns active tips, optionally filtered by category,
// highest priority first.
func (r *Repository) ListSafetyTips(ctx context.Context, category string, limit int) ([]model.SafetyTip, error) {
	query := `SELECT id, title, content, category, region, language, priority, is_active
              FROM safety_tips WHERE is_active = TRUE`
	args := []any{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY priority DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tips []model.SafetyTip
	for rows.Next() {
		var t model.SafetyTip
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &t.Category, &t.Region,
			&t.Language, &t.Priority, &t.IsActive); err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

// ListSafeZones returns all active safe zones.
func (r *Repository) ListSafeZones(ctx context.Context) ([]model.SafeZone, error) {
	query := `SELECT id, name, zone_type, location_lat, location_lng, radius_meters, description, is_active
              FROM safe_zones WHERE is_active = TRUE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []model.SafeZone
	for rows.Next() {
		var z model.SafeZone
		if err := rows.Scan(&z.ID, &z.Name, &z.ZoneType, &z.Location.Lat, &z.Location.Lng,
			&z.RadiusMeters, &z.Description, &z.IsActive); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// ListHelplines returns active helplines, optionally filtered by category
// and region.
func (r *Repository) ListHelplines(ctx context.Context, category, region string) ([]model.Helpline, error) {
	query := `SELECT id, name, phone_number, category, region, language, available_24_7, is_active
              FROM helplines WHERE is_active = TRUE`
	args := []any{}
	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if region != "" {
		args = append(args, region)
		query += fmt.Sprintf(" AND region = $%d", len(args))
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.Helpline
	for rows.Next() {
		var h model.Helpline
		if err := rows.Scan(&h.ID, &h.Name, &h.Phone, &h.Category, &h.Region,
			&h.Language, &h.Available24, &h.IsActive); err != nil {
			return nil, err
		}
		lines = append(lines, h)
	}
	return lines, rows.Err()
}
