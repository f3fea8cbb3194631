package notifications

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/cleversamer/accountsvc/domain"
)

// TwilioServiceImpl implements domain.SMSSender.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     zerolog.Logger
}

// NewTwilioService creates a new Twilio SMS sender.
func NewTwilioService(accountSID, authToken, fromNumber string, logger zerolog.Logger) domain.SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// Send implements domain.SMSSender. Without a configured sender number the
// message is logged instead of sent, which keeps local development free of
// Twilio credentials.
func (t *TwilioServiceImpl) Send(to, message string) error {
	if t.fromNumber == "" {
		t.logger.Info().Str("to", to).Str("message", message).Msg("sms sender not configured, logging instead")
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
