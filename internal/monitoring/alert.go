package monitoring

import (
	"github.com/rs/zerolog/log"
)

// EscalationAlert raises an operational alert (logs for now).
func EscalationAlert(message string, labels map[string]string) {
	log.Error().
		Str("alert", message).
		Fields(labels).
		Msg("ALERT: Safety pipeline issue detected")
}
