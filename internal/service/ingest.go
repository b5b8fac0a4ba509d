package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
	"github.com/teresa-solution/tourist-safety-service/internal/monitoring"
)

// EventStore is the persistence surface for event ingestion.
type EventStore interface {
	CreateAlert(ctx context.Context, a *model.PanicAlert) error
	CreateIncident(ctx context.Context, inc *model.IncidentReport) error
	CreateCheckin(ctx context.Context, c *model.SafetyCheckin) error
	GetProfileByID(ctx context.Context, id uuid.UUID) (*model.TouristProfile, error)
}

// IngestionService validates and durably persists safety events. Every call
// yields a new record; nothing is merged or de-duplicated here — the client
// is responsible for not double-submitting.
type IngestionService struct {
	store EventStore
}

func NewIngestionService(store EventStore) *IngestionService {
	return &IngestionService{store: store}
}

func (s *IngestionService) touristExists(ctx context.Context, touristID uuid.UUID) error {
	profile, err := s.store.GetProfileByID(ctx, touristID)
	if err != nil {
		return fault.Persistence("profile lookup", err)
	}
	if profile == nil {
		return fault.ErrNotFound
	}
	return nil
}

func validateCoordinate(coord model.Coordinate) error {
	if coord.Lat < -90 || coord.Lat > 90 {
		return fault.Invalid("location_lat", "must be within [-90, 90]")
	}
	if coord.Lng < -180 || coord.Lng > 180 {
		return fault.Invalid("location_lng", "must be within [-180, 180]")
	}
	return nil
}

// IngestPanic persists a panic alert with status active.
func (s *IngestionService) IngestPanic(ctx context.Context, touristID uuid.UUID, coord model.Coordinate, alertType, description string) (*model.PanicAlert, error) {
	if err := validateCoordinate(coord); err != nil {
		return nil, err
	}
	if err := s.touristExists(ctx, touristID); err != nil {
		return nil, err
	}

	if description == "" {
		description = "Emergency panic button activated"
	}
	alert := &model.PanicAlert{
		TouristID:   touristID,
		Location:    coord,
		AlertType:   model.ParseAlertType(alertType),
		Description: description,
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		return nil, fault.Persistence("alert create", err)
	}

	monitoring.EventsIngested.WithLabelValues(string(model.KindPanic)).Inc()
	log.Info().
		Str("alert_id", alert.ID.String()).
		Str("tourist_id", touristID.String()).
		Str("alert_type", string(alert.AlertType)).
		Msg("Panic alert created")
	return alert, nil
}

// IncidentInput carries the client-supplied incident fields.
type IncidentInput struct {
	IncidentType string
	Description  string
	Severity     string
}

// IngestIncident persists an incident report with status reported.
func (s *IngestionService) IngestIncident(ctx context.Context, touristID uuid.UUID, coord model.Coordinate, in IncidentInput) (*model.IncidentReport, error) {
	if in.IncidentType == "" {
		return nil, fault.Invalid("incident_type", "required")
	}
	if in.Description == "" {
		return nil, fault.Invalid("description", "required")
	}
	severity := model.ParseSeverity(in.Severity)
	if severity == "" {
		return nil, fault.Invalid("severity", "must be one of low, medium, high, critical")
	}
	if err := validateCoordinate(coord); err != nil {
		return nil, err
	}
	if err := s.touristExists(ctx, touristID); err != nil {
		return nil, err
	}

	inc := &model.IncidentReport{
		TouristID:    touristID,
		Location:     coord,
		IncidentType: model.ParseIncidentType(in.IncidentType),
		Description:  in.Description,
		Severity:     severity,
	}
	if err := s.store.CreateIncident(ctx, inc); err != nil {
		return nil, fault.Persistence("incident create", err)
	}

	monitoring.EventsIngested.WithLabelValues(string(model.KindIncident)).Inc()
	log.Info().
		Str("report_id", inc.ID.String()).
		Str("tourist_id", touristID.String()).
		Str("severity", string(severity)).
		Msg("Incident report filed")
	return inc, nil
}

// IngestCheckin persists a safe-status check-in. Coordinate is optional.
func (s *IngestionService) IngestCheckin(ctx context.Context, touristID uuid.UUID, coord *model.Coordinate, message string) (*model.SafetyCheckin, error) {
	if coord != nil {
		if err := validateCoordinate(*coord); err != nil {
			return nil, err
		}
	}
	if err := s.touristExists(ctx, touristID); err != nil {
		return nil, err
	}

	if message == "" {
		message = "I'm safe and well!"
	}
	checkin := &model.SafetyCheckin{
		TouristID: touristID,
		Location:  coord,
		Message:   message,
	}
	if err := s.store.CreateCheckin(ctx, checkin); err != nil {
		return nil, fault.Persistence("checkin create", err)
	}

	monitoring.EventsIngested.WithLabelValues(string(model.KindCheckin)).Inc()
	log.Info().
		Str("checkin_id", checkin.ID.String()).
		Str("tourist_id", touristID.String()).
		Msg("Safety check-in recorded")
	return checkin, nil
}
