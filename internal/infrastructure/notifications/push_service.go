package notifications

import (
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/domain"
)

// LogPushSender implements domain.PushSender by recording the delivery
// attempt. Push delivery is an external collaborator; the ledger itself is
// already persisted before this runs.
// TODO: replace with an FCM client once service-account credentials are
// provisioned.
type LogPushSender struct {
	logger zerolog.Logger
}

// NewLogPushSender creates the logging push sender.
func NewLogPushSender(logger zerolog.Logger) domain.PushSender {
	return &LogPushSender{logger: logger}
}

// Send implements domain.PushSender.
func (p *LogPushSender) Send(tokens []string, title, body string, data map[string]string) error {
	p.logger.Info().
		Int("devices", len(tokens)).
		Str("title", title).
		Str("body", body).
		Msg("push notification dispatched")
	return nil
}
