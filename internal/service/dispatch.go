package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
	"github.com/teresa-solution/tourist-safety-service/internal/monitoring"
	"github.com/teresa-solution/tourist-safety-service/internal/notify"
)

// DispatchStore is the persistence surface for notification fan-out.
type DispatchStore interface {
	GetAlertByID(ctx context.Context, id uuid.UUID) (*model.PanicAlert, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*model.TouristProfile, error)
	ListEmergencyContacts(ctx context.Context, touristID uuid.UUID) ([]model.EmergencyContact, error)
	ExistingOutcomes(ctx context.Context, alertID uuid.UUID) (map[string]model.NotificationOutcome, error)
	InsertOutcome(ctx context.Context, o *model.NotificationOutcome) (bool, error)
}

// DispatchResult aggregates the per-channel outcomes of one fan-out.
type DispatchResult struct {
	AlertID           uuid.UUID                   `json:"alert_id"`
	ChannelsAttempted int                         `json:"channels_attempted"`
	Outcomes          []model.NotificationOutcome `json:"outcomes"`
	PoliceNotified    bool                        `json:"police_notified"`
	ContactsNotified  int                         `json:"contacts_notified"`
}

// DispatchService fans a persisted panic alert out to the police/admin
// channel and the tourist's emergency contacts. Best-effort: a channel
// failure is recorded, never propagated as a failure of the whole dispatch.
type DispatchService struct {
	store    DispatchStore
	notifier notify.Notifier
}

func NewDispatchService(store DispatchStore, notifier notify.Notifier) *DispatchService {
	return &DispatchService{store: store, notifier: notifier}
}

// Dispatch delivers the alert to every responder channel that has no
// recorded outcome yet. Idempotent per alert: the persisted outcome per
// (alert, channel) is the sole de-duplication guard, so concurrent
// dispatcher instances cannot double-deliver.
func (s *DispatchService) Dispatch(ctx context.Context, alertID uuid.UUID) (*DispatchResult, error) {
	start := time.Now()

	alert, err := s.store.GetAlertByID(ctx, alertID)
	if err != nil {
		return nil, fault.Persistence("alert lookup", err)
	}
	if alert == nil {
		return nil, fault.ErrNotFound
	}

	profile, err := s.store.GetProfileByID(ctx, alert.TouristID)
	if err != nil {
		return nil, fault.Persistence("profile lookup", err)
	}
	if profile == nil {
		return nil, fault.ErrNotFound
	}

	contacts, err := s.store.ListEmergencyContacts(ctx, alert.TouristID)
	if err != nil {
		return nil, fault.Persistence("contact lookup", err)
	}

	channels := make([]notify.Channel, 0, len(contacts)+1)
	channels = append(channels, notify.PoliceChannel())
	for _, c := range contacts {
		channels = append(channels, notify.ContactChannel(c))
	}

	existing, err := s.store.ExistingOutcomes(ctx, alertID)
	if err != nil {
		return nil, fault.Persistence("outcome lookup", err)
	}

	result := &DispatchResult{AlertID: alertID}
	for _, ch := range channels {
		if prior, ok := existing[ch.ID]; ok {
			result.Outcomes = append(result.Outcomes, prior)
			continue
		}
		result.Outcomes = append(result.Outcomes, s.attempt(ctx, ch, alert, profile))
		result.ChannelsAttempted++
	}

	for _, o := range result.Outcomes {
		if !o.Delivered {
			continue
		}
		if o.ChannelID == notify.PoliceChannelID {
			result.PoliceNotified = true
		} else {
			result.ContactsNotified++
		}
	}

	if result.ChannelsAttempted > 0 && !result.PoliceNotified && result.ContactsNotified == 0 {
		monitoring.EscalationAlert("all notification channels failed", map[string]string{
			"alert_id":   alertID.String(),
			"tourist_id": alert.TouristID.String(),
		})
	}

	monitoring.DispatchDuration.Observe(time.Since(start).Seconds())
	log.Info().
		Str("alert_id", alertID.String()).
		Int("channels_attempted", result.ChannelsAttempted).
		Int("contacts_notified", result.ContactsNotified).
		Bool("police_notified", result.PoliceNotified).
		Msg("Alert dispatch completed")
	return result, nil
}

// attempt delivers to one channel and records the outcome. If the outcome
// insert loses the uniqueness race, a concurrent dispatcher already handled
// this channel and its record stands.
func (s *DispatchService) attempt(ctx context.Context, ch notify.Channel, alert *model.PanicAlert, profile *model.TouristProfile) model.NotificationOutcome {
	outcome := model.NotificationOutcome{
		AlertID:   alert.ID,
		ChannelID: ch.ID,
		Delivered: true,
	}
	if err := s.notifier.Send(ctx, ch, alert, profile); err != nil {
		outcome.Delivered = false
		outcome.Error = err.Error()
		log.Warn().
			Err(err).
			Str("alert_id", alert.ID.String()).
			Str("channel_id", ch.ID).
			Msg("Channel delivery failed")
	}

	monitoring.NotificationsSent.WithLabelValues(string(ch.Kind), deliveryLabel(outcome.Delivered)).Inc()

	inserted, err := s.store.InsertOutcome(ctx, &outcome)
	if err != nil {
		log.Error().
			Err(err).
			Str("alert_id", alert.ID.String()).
			Str("channel_id", ch.ID).
			Msg("Failed to record notification outcome")
	} else if !inserted {
		log.Info().
			Str("alert_id", alert.ID.String()).
			Str("channel_id", ch.ID).
			Msg("Outcome already recorded by a concurrent dispatch")
	}
	return outcome
}

func deliveryLabel(delivered bool) string {
	if delivered {
		return "delivered"
	}
	return "failed"
}
