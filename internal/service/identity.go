package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// ProfileStore is the persistence surface the identity resolver needs.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p *model.TouristProfile) error
	GetProfileByPrincipal(ctx context.Context, principalID string) (*model.TouristProfile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*model.TouristProfile, error)
}

// IdentityService maps verified principals to tourist profiles, creating one
// on first use.
type IdentityService struct {
	store ProfileStore
}

func NewIdentityService(store ProfileStore) *IdentityService {
	return &IdentityService{store: store}
}

// ResolveProfile returns the profile for principalID, creating it with
// defaults when absent. Idempotent under concurrent first use: the create
// path relies on the unique constraint on principal_id, and a conflict means
// another request won the race, so we re-fetch instead of failing.
func (s *IdentityService) ResolveProfile(ctx context.Context, principalID string) (*model.TouristProfile, error) {
	if principalID == "" {
		return nil, fault.ErrUnauthorized
	}

	profile, err := s.store.GetProfileByPrincipal(ctx, principalID)
	if err != nil {
		return nil, fault.Persistence("profile lookup", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = &model.TouristProfile{
		PrincipalID: principalID,
		FullName:    "Unregistered Tourist",
		Country:     "unknown",
		Phone:       "unknown",
		SafetyScore: model.DefaultSafetyScore,
	}
	err = s.store.CreateProfile(ctx, profile)
	if errors.Is(err, fault.ErrConflict) {
		profile, err = s.store.GetProfileByPrincipal(ctx, principalID)
		if err != nil {
			return nil, fault.Persistence("profile re-fetch after conflict", err)
		}
		if profile == nil {
			// Lost the race to a writer that then vanished; profiles are
			// never deleted, so this is a store inconsistency.
			return nil, fault.Persistence("profile re-fetch after conflict", fault.ErrNotFound)
		}
		return profile, nil
	}
	if err != nil {
		return nil, fault.Persistence("profile create", err)
	}

	log.Info().
		Str("tourist_id", profile.ID.String()).
		Str("principal_id", principalID).
		Msg("Created tourist profile on first resolve")
	return profile, nil
}
