package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/triggers"
	"Backend-Seabreeze/src/services/triggers/email"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleTriggerEmails builds the handler for a lifecycle trigger pass. The
// flag is checked before evaluating and only set once every rule completed
// without error, so a failed pass stays retryable without double-sending the
// passes that already flagged themselves.
// errNoSender fails email tasks up front when SMTP was never configured, so
// asynq keeps them retryable instead of panicking mid-dispatch.
var errNoSender = errors.New("smtp sender not configured")

func HandleTriggerEmails(sender email.MailSender, event triggers.Event, flagPath string) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if sender == nil {
			return errNoSender
		}
		var p BookingPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		booking, set, err := loadBookingAnswers(ctx, p.BookingUUID)
		if err != nil {
			return err
		}

		if booking.Metainfo.Flag(flagPath) {
			log.Printf("[jobs] %s already sent booking=%s, skip", flagPath, p.BookingUUID)
			return nil
		}

		rules, err := triggers.LoadEnabled(ctx, false)
		if err != nil {
			return err
		}

		dispatcher := triggers.NewDispatcher(sender)
		results := dispatcher.Dispatch(ctx, event, booking, set, rules)
		for _, res := range results {
			if res.Err != nil {
				// Leave the flag unset so a retry re-evaluates the whole pass.
				return fmt.Errorf("trigger pass incomplete for booking %s: %w", p.BookingUUID, res.Err)
			}
		}

		return bookings.SetMetainfoFlag(ctx, booking, flagPath)
	}
}

// HandleEvaluateTriggers is the generic pass over admin-routed rules (those
// with a static recipient), guarded by the notifications flag.
func HandleEvaluateTriggers(sender email.MailSender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if sender == nil {
			return errNoSender
		}
		var p BookingPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		booking, set, err := loadBookingAnswers(ctx, p.BookingUUID)
		if err != nil {
			return err
		}

		if booking.Metainfo.Flag("notifications") {
			return nil
		}

		rules, err := triggers.LoadEnabled(ctx, true)
		if err != nil {
			return err
		}

		dispatcher := triggers.NewDispatcher(sender)
		for _, res := range dispatcher.Dispatch(ctx, triggers.EventGeneric, booking, set, rules) {
			if res.Err != nil {
				return fmt.Errorf("trigger evaluation incomplete for booking %s: %w", p.BookingUUID, res.Err)
			}
		}

		return bookings.SetMetainfoFlag(ctx, booking, "notifications")
	}
}

// HandleSendTriggerEmail dispatches one specific rule for one booking,
// guarded per rule id.
func HandleSendTriggerEmail(sender email.MailSender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if sender == nil {
			return errNoSender
		}
		var p TriggerEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		triggerID, err := primitive.ObjectIDFromHex(p.TriggerID)
		if err != nil {
			return fmt.Errorf("bad trigger id %q: %w", p.TriggerID, err)
		}

		booking, set, err := loadBookingAnswers(ctx, p.BookingUUID)
		if err != nil {
			return err
		}

		flagPath := "sent_trigger." + triggerID.Hex()
		if booking.Metainfo.Flag(flagPath) {
			return nil
		}

		rule, err := triggers.GetTriggerByID(ctx, triggerID)
		if err != nil {
			return err
		}

		dispatcher := triggers.NewDispatcher(sender)
		results := dispatcher.Dispatch(ctx, triggers.EventGeneric, booking, set, []models.Trigger{*rule})
		if results[0].Err != nil {
			return results[0].Err
		}
		if !results[0].Sent {
			// Condition not met or recipient invalid: nothing to flag.
			return nil
		}

		return bookings.SetMetainfoFlag(ctx, booking, flagPath)
	}
}
