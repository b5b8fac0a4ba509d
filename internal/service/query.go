package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
	"github.com/teresa-solution/tourist-safety-service/internal/store"
)

// EventRecord is the read-only projection served to dashboard consumers.
type EventRecord struct {
	ID          uuid.UUID         `json:"id"`
	Kind        model.EventKind   `json:"kind"`
	TouristID   uuid.UUID         `json:"tourist_id"`
	Location    *model.Coordinate `json:"location,omitempty"`
	Status      string            `json:"status"`
	Severity    model.Severity    `json:"severity,omitempty"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// EventQuery narrows an event listing. Zero values are not applied.
type EventQuery struct {
	TouristID *uuid.UUID
	Kind      model.EventKind
	Status    string
	Severity  model.Severity
	From      *time.Time
	To        *time.Time
}

// QueryStore is the read surface for event projections.
type QueryStore interface {
	ListAlerts(ctx context.Context, f store.EventFilter) ([]model.PanicAlert, error)
	ListIncidents(ctx context.Context, f store.EventFilter) ([]model.IncidentReport, error)
	ListCheckins(ctx context.Context, f store.EventFilter) ([]model.SafetyCheckin, error)
	ListHelplines(ctx context.Context, category, region string) ([]model.Helpline, error)
}

// QueryService serves read-only projections. It is the only interface the
// admin/dashboard collaborator observes state through; it has no side
// effects.
type QueryService struct {
	store QueryStore
}

func NewQueryService(store QueryStore) *QueryService {
	return &QueryService{store: store}
}

// Events returns matching event records ordered by creation time descending.
// A severity filter restricts results to incident reports, the only kind
// that carries one.
func (s *QueryService) Events(ctx context.Context, q EventQuery) ([]EventRecord, error) {
	f := store.EventFilter{
		TouristID: q.TouristID,
		Status:    q.Status,
		Severity:  q.Severity,
		From:      q.From,
		To:        q.To,
	}

	wantKind := func(k model.EventKind) bool {
		return q.Kind == "" || q.Kind == k
	}

	var records []EventRecord

	if wantKind(model.KindPanic) && q.Severity == "" {
		alerts, err := s.store.ListAlerts(ctx, f)
		if err != nil {
			return nil, fault.Persistence("alert listing", err)
		}
		for i := range alerts {
			a := alerts[i]
			loc := a.Location
			records = append(records, EventRecord{
				ID:          a.ID,
				Kind:        model.KindPanic,
				TouristID:   a.TouristID,
				Location:    &loc,
				Status:      string(a.Status),
				Description: a.Description,
				CreatedAt:   a.CreatedAt,
			})
		}
	}

	if wantKind(model.KindIncident) {
		incidents, err := s.store.ListIncidents(ctx, f)
		if err != nil {
			return nil, fault.Persistence("incident listing", err)
		}
		for i := range incidents {
			inc := incidents[i]
			loc := inc.Location
			records = append(records, EventRecord{
				ID:          inc.ID,
				Kind:        model.KindIncident,
				TouristID:   inc.TouristID,
				Location:    &loc,
				Status:      inc.Status,
				Severity:    inc.Severity,
				Description: inc.Description,
				CreatedAt:   inc.CreatedAt,
			})
		}
	}

	if wantKind(model.KindCheckin) && q.Severity == "" {
		checkins, err := s.store.ListCheckins(ctx, f)
		if err != nil {
			return nil, fault.Persistence("checkin listing", err)
		}
		for i := range checkins {
			c := checkins[i]
			records = append(records, EventRecord{
				ID:          c.ID,
				Kind:        model.KindCheckin,
				TouristID:   c.TouristID,
				Location:    c.Location,
				Status:      c.Status,
				Description: c.Message,
				CreatedAt:   c.CreatedAt,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Helplines returns the active helpline directory, optionally filtered.
func (s *QueryService) Helplines(ctx context.Context, category, region string) ([]model.Helpline, error) {
	lines, err := s.store.ListHelplines(ctx, category, region)
	if err != nil {
		return nil, fault.Persistence("helpline listing", err)
	}
	return lines, nil
}
