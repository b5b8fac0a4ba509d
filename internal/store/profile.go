package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teresa-solution/tourist-safety-service/internal/crypto"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// CreateProfile inserts a new tourist profile. A duplicate principal_id
// returns fault.ErrConflict; the identity resolver re-fetches on that.
func (r *Repository) CreateProfile(ctx context.Context, p *model.TouristProfile) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	if p.Phone != "" {
		encrypted, iv, err := crypto.EncryptPII(p.Phone)
		if err != nil {
			return err
		}
		p.EncryptedPhone = encrypted
		p.PhoneIV = iv
	}

	query := `INSERT INTO tourist_profiles (id, principal_id, full_name, country, encrypted_phone, phone_iv, safety_score, location_tracking_enabled, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.PrincipalID, p.FullName, p.Country,
		p.EncryptedPhone, p.PhoneIV, p.SafetyScore, p.TrackingEnabled, p.CreatedAt, p.UpdatedAt)
	return mapInsertErr(err)
}

const profileColumns = `id, principal_id, full_name, country, encrypted_phone, phone_iv, safety_score, location_tracking_enabled, created_at, updated_at`

func scanProfile(row *sql.Row) (*model.TouristProfile, error) {
	p := &model.TouristProfile{}
	err := row.Scan(&p.ID, &p.PrincipalID, &p.FullName, &p.Country, &p.EncryptedPhone,
		&p.PhoneIV, &p.SafetyScore, &p.TrackingEnabled, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(p.EncryptedPhone) > 0 {
		phone, err := crypto.DecryptPII(p.EncryptedPhone, p.PhoneIV)
		if err != nil {
			return nil, err
		}
		p.Phone = phone
	}
	return p, nil
}

// GetProfileByPrincipal looks up a profile by its verified principal id.
// Returns (nil, nil) when absent.
func (r *Repository) GetProfileByPrincipal(ctx context.Context, principalID string) (*model.TouristProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM tourist_profiles WHERE principal_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, principalID))
}

// GetProfileByID looks up a profile by id, read-through cached.
func (r *Repository) GetProfileByID(ctx context.Context, id uuid.UUID) (*model.TouristProfile, error) {
	key := fmt.Sprintf("profile:%s", id.String())
	if data, ok := r.cacheGet(ctx, key); ok {
		p := &model.TouristProfile{}
		if err := json.Unmarshal(data, p); err == nil {
			return p, nil
		}
	}

	query := `SELECT ` + profileColumns + ` FROM tourist_profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil || p == nil {
		return p, err
	}

	if data, err := json.Marshal(p); err == nil {
		r.cacheSet(ctx, key, data, profileCacheTTL)
	}
	return p, nil
}

// UpdateProfile persists mutable profile fields and invalidates the cache.
func (r *Repository) UpdateProfile(ctx context.Context, p *model.TouristProfile) error {
	if p.Phone != "" {
		encrypted, iv, err := crypto.EncryptPII(p.Phone)
		if err != nil {
			return err
		}
		p.EncryptedPhone = encrypted
		p.PhoneIV = iv
	}

	query := `UPDATE tourist_profiles SET full_name = $2, country = $3, encrypted_phone = $4, phone_iv = $5, safety_score = $6, location_tracking_enabled = $7, updated_at = $8
              WHERE id = $1`
	p.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.FullName, p.Country, p.EncryptedPhone,
		p.PhoneIV, p.SafetyScore, p.TrackingEnabled, p.UpdatedAt)
	if err != nil {
		return err
	}

	r.cacheDel(ctx, fmt.Sprintf("profile:%s", p.ID.String()))
	return nil
}

// ListEmergencyContacts returns the contacts for a tourist, primary first,
// then stored order.
func (r *Repository) ListEmergencyContacts(ctx context.Context, touristID uuid.UUID) ([]model.EmergencyContact, error) {
	query := `SELECT id, tourist_id, name, encrypted_phone, phone_iv, relationship, is_primary, created_at
              FROM emergency_contacts WHERE tourist_id = $1
              ORDER BY is_primary DESC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, touristID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []model.EmergencyContact
	for rows.Next() {
		var c model.EmergencyContact
		if err := rows.Scan(&c.ID, &c.TouristID, &c.Name, &c.EncryptedPhone, &c.PhoneIV,
			&c.Relationship, &c.IsPrimary, &c.CreatedAt); err != nil {
			return nil, err
		}
		if len(c.EncryptedPhone) > 0 {
			phone, err := crypto.DecryptPII(c.EncryptedPhone, c.PhoneIV)
			if err != nil {
				return nil, err
			}
			c.Phone = phone
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
