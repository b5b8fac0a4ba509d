// Package notify defines the outward notification boundary used by the
// dispatcher. Implementations are swappable without touching dispatch logic.
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// ChannelKind distinguishes responder channel families.
type ChannelKind string

const (
	ChannelPolice  ChannelKind = "police"
	ChannelContact ChannelKind = "contact"
)

// PoliceChannelID identifies the fixed police/admin channel.
const PoliceChannelID = "police"

// Channel is a single notification destination for an alert.
type Channel struct {
	ID    string
	Kind  ChannelKind
	Name  string
	Phone string
}

// ContactChannel builds the channel for one emergency contact.
func ContactChannel(c model.EmergencyContact) Channel {
	return Channel{
		ID:    "contact:" + c.ID.String(),
		Kind:  ChannelContact,
		Name:  c.Name,
		Phone: c.Phone,
	}
}

// PoliceChannel builds the fixed police/admin channel.
func PoliceChannel() Channel {
	return Channel{ID: PoliceChannelID, Kind: ChannelPolice, Name: "Police Control Room"}
}

// Notifier delivers an alert to one channel. A non-nil error means that
// channel failed; the dispatcher records it and moves on.
type Notifier interface {
	Send(ctx context.Context, ch Channel, alert *model.PanicAlert, profile *model.TouristProfile) error
}

// LogNotifier is the logging stand-in for real SMS/voice/police senders.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, ch Channel, alert *model.PanicAlert, profile *model.TouristProfile) error {
	log.Info().
		Str("alert_id", alert.ID.String()).
		Str("channel_id", ch.ID).
		Str("channel_kind", string(ch.Kind)).
		Str("tourist", profile.FullName).
		Float64("lat", alert.Location.Lat).
		Float64("lng", alert.Location.Lng).
		Str("location_name", alert.Location.Name).
		Msg("Notification delivered")
	return nil
}
