package jobs

import (
	"context"
	"testing"

	"Backend-Seabreeze/src/services/triggers"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The worker runs whenever Redis is up, SMTP configured or not. Email
// handlers built without a sender must fail their task before touching
// anything, so asynq keeps it retryable.
func TestEmailHandlersWithoutSender(t *testing.T) {
	task, err := NewTriggerEmailsSubmitTask("11111111-2222-3333-4444-555555555555")
	require.NoError(t, err)

	handlers := map[string]asynq.HandlerFunc{
		"TriggerEmailsSubmit":  HandleTriggerEmails(nil, triggers.EventSubmit, "triggered_emails.on_submit"),
		"TriggerEmailsConfirm": HandleTriggerEmails(nil, triggers.EventConfirm, "triggered_emails.on_booking_confirmed"),
		"EvaluateTriggers":     HandleEvaluateTriggers(nil),
		"SendTriggerEmail":     HandleSendTriggerEmail(nil),
		"SendDatesOfStay":      HandleSendDatesOfStay(nil),
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			err := handler(context.Background(), task)
			assert.ErrorIs(t, err, errNoSender)
		})
	}
}
