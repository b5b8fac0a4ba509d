package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/location"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// ActionService runs the client-triggered action chains. Each chain is one
// synchronous sequence — acquire location, resolve identity, ingest, and for
// panic, dispatch — where a failure at any stage aborts the rest. There is
// no automatic retry; the user re-triggers the action.
type ActionService struct {
	identity *IdentityService
	ingest   *IngestionService
	dispatch *DispatchService
}

func NewActionService(identity *IdentityService, ingest *IngestionService, dispatch *DispatchService) *ActionService {
	return &ActionService{identity: identity, ingest: ingest, dispatch: dispatch}
}

// TriggerPanic runs the emergency chain for a principal. The panic flow uses
// the short location deadline with high accuracy requested.
func (s *ActionService) TriggerPanic(ctx context.Context, principalID string, sensor location.Sensor, alertType, description string) (*model.PanicAlert, *DispatchResult, error) {
	coord, err := location.NewAcquirer(sensor).Acquire(ctx, location.PanicTimeout, true)
	if err != nil {
		log.Warn().Err(err).Str("principal_id", principalID).Msg("Panic aborted: no location fix")
		return nil, nil, err
	}

	profile, err := s.identity.ResolveProfile(ctx, principalID)
	if err != nil {
		return nil, nil, err
	}

	alert, err := s.ingest.IngestPanic(ctx, profile.ID, coord, alertType, description)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.dispatch.Dispatch(ctx, alert.ID)
	if err != nil {
		return nil, nil, err
	}
	return alert, result, nil
}

// ReportIncident runs the incident chain for a principal.
func (s *ActionService) ReportIncident(ctx context.Context, principalID string, sensor location.Sensor, in IncidentInput) (*model.IncidentReport, error) {
	coord, err := location.NewAcquirer(sensor).Acquire(ctx, location.DefaultTimeout, false)
	if err != nil {
		log.Warn().Err(err).Str("principal_id", principalID).Msg("Incident report aborted: no location fix")
		return nil, err
	}

	profile, err := s.identity.ResolveProfile(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.ingest.IngestIncident(ctx, profile.ID, coord, in)
}

// CheckInSafe runs the safe-status chain. sensor may be nil; the coordinate
// is optional for check-ins and its absence is not a failure.
func (s *ActionService) CheckInSafe(ctx context.Context, principalID string, sensor location.Sensor, message string) (*model.SafetyCheckin, error) {
	var coord *model.Coordinate
	if sensor != nil {
		c, err := location.NewAcquirer(sensor).Acquire(ctx, location.DefaultTimeout, false)
		if err != nil {
			log.Warn().Err(err).Str("principal_id", principalID).Msg("Check-in aborted: no location fix")
			return nil, err
		}
		coord = &c
	}

	profile, err := s.identity.ResolveProfile(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.ingest.IngestCheckin(ctx, profile.ID, coord, message)
}
