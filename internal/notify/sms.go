package notify

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// SMSClient is the injectable send interface adapting a real SMS gateway SDK.
type SMSClient interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// SMSConfig carries gateway settings plus the destination for the fixed
// police/admin channel.
type SMSConfig struct {
	SenderID    string
	PolicePhone string
}

// SMSNotifier sends alert notifications over an SMS gateway.
type SMSNotifier struct {
	cfg SMSConfig
	cli SMSClient
}

func NewSMSNotifier(cfg SMSConfig, cli SMSClient) *SMSNotifier {
	return &SMSNotifier{cfg: cfg, cli: cli}
}

func (n *SMSNotifier) Send(ctx context.Context, ch Channel, alert *model.PanicAlert, profile *model.TouristProfile) error {
	if n.cli == nil {
		return errors.New("SMSClient not configured")
	}

	phone := ch.Phone
	if ch.Kind == ChannelPolice {
		phone = n.cfg.PolicePhone
	}
	if phone == "" {
		return errors.Errorf("channel %s has no phone number", ch.ID)
	}

	msg := alertMessage(alert, profile)
	if err := n.cli.SendSMS(ctx, phone, msg); err != nil {
		return errors.Wrapf(err, "sms delivery to channel %s failed", ch.ID)
	}
	return nil
}

func alertMessage(alert *model.PanicAlert, profile *model.TouristProfile) string {
	place := alert.Location.Name
	if place == "" {
		place = fmt.Sprintf("%.5f,%.5f", alert.Location.Lat, alert.Location.Lng)
	}
	return fmt.Sprintf("EMERGENCY (%s): %s needs help at %s. Map: https://maps.google.com/?q=%f,%f",
		alert.AlertType, profile.FullName, place, alert.Location.Lat, alert.Location.Lng)
}
