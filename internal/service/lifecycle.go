package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
	"github.com/teresa-solution/tourist-safety-service/internal/monitoring"
)

// LifecycleStore is the persistence surface for alert status transitions.
// The update methods carry the status guard in their WHERE clause; a zero
// row count means the alert was absent or in a state that forbids the move.
type LifecycleStore interface {
	GetAlertByID(ctx context.Context, id uuid.UUID) (*model.PanicAlert, error)
	AcknowledgeAlert(ctx context.Context, id uuid.UUID) (int64, error)
	ResolveAlert(ctx context.Context, id uuid.UUID, resolvedAt time.Time, responseTime time.Duration) (int64, error)
}

// LifecycleService manages panic alert status transitions. States move only
// forward: active -> acknowledged -> resolved, with active -> resolved also
// permitted. Resolved is terminal.
type LifecycleService struct {
	store LifecycleStore
}

func NewLifecycleService(store LifecycleStore) *LifecycleService {
	return &LifecycleService{store: store}
}

// Acknowledge moves an alert from active to acknowledged. Any other source
// state fails with fault.ErrInvalidTransition.
func (s *LifecycleService) Acknowledge(ctx context.Context, alertID uuid.UUID) (*model.PanicAlert, error) {
	rows, err := s.store.AcknowledgeAlert(ctx, alertID)
	if err != nil {
		return nil, fault.Persistence("alert acknowledge", err)
	}
	if rows == 0 {
		alert, err := s.store.GetAlertByID(ctx, alertID)
		if err != nil {
			return nil, fault.Persistence("alert lookup", err)
		}
		if alert == nil {
			return nil, fault.ErrNotFound
		}
		return nil, fault.ErrInvalidTransition
	}

	alert, err := s.store.GetAlertByID(ctx, alertID)
	if err != nil {
		return nil, fault.Persistence("alert lookup", err)
	}
	log.Info().Str("alert_id", alertID.String()).Msg("Alert acknowledged")
	return alert, nil
}

// Resolve moves an alert to resolved from active or acknowledged, computing
// response_time = resolvedAt - created_at. Re-resolution fails with
// fault.ErrAlreadyResolved rather than silently succeeding — it indicates a
// caller bug worth surfacing.
func (s *LifecycleService) Resolve(ctx context.Context, alertID uuid.UUID, resolvedAt time.Time) (*model.PanicAlert, error) {
	alert, err := s.store.GetAlertByID(ctx, alertID)
	if err != nil {
		return nil, fault.Persistence("alert lookup", err)
	}
	if alert == nil {
		return nil, fault.ErrNotFound
	}
	if alert.Status == model.AlertResolved {
		return nil, fault.ErrAlreadyResolved
	}

	responseTime := resolvedAt.Sub(alert.CreatedAt)
	if responseTime < 0 {
		return nil, fault.Invalid("resolved_at", "precedes alert creation")
	}

	rows, err := s.store.ResolveAlert(ctx, alertID, resolvedAt, responseTime)
	if err != nil {
		return nil, fault.Persistence("alert resolve", err)
	}
	if rows == 0 {
		// Lost a race with another resolver; the guarded update is
		// authoritative, the earlier read was stale.
		return nil, fault.ErrAlreadyResolved
	}

	monitoring.AlertResponseTime.Observe(responseTime.Seconds())
	log.Info().
		Str("alert_id", alertID.String()).
		Dur("response_time", responseTime).
		Msg("Alert resolved")

	alert, err = s.store.GetAlertByID(ctx, alertID)
	if err != nil {
		return nil, fault.Persistence("alert lookup", err)
	}
	return alert, nil
}
