package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/triggers/email"

	"github.com/hibiken/asynq"
)

// HandleSendDatesOfStay emails the guest their confirmed stay dates, once,
// guarded by sendDatesOfStayEmail.sent.
func HandleSendDatesOfStay(sender email.MailSender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if sender == nil {
			return errNoSender
		}
		var p BookingPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		booking, err := bookings.GetBookingByUUID(ctx, p.BookingUUID)
		if err != nil {
			return err
		}
		if booking.Metainfo.Flag("sendDatesOfStayEmail.sent") {
			return nil
		}
		if booking.PreferredCheckin == nil || booking.PreferredCheckout == nil {
			log.Printf("[jobs] booking=%s has no stay dates yet, skip dates-of-stay email", p.BookingUUID)
			return nil
		}

		rooms, err := bookings.GetBookingRooms(ctx, booking.ID)
		if err != nil {
			return err
		}
		labels := make([]string, 0, len(rooms))
		for _, r := range rooms {
			labels = append(labels, r.Label)
		}

		html, err := email.RenderDatesOfStayEmailHTML(email.DatesOfStayEmailData{
			GuestName: booking.GuestName,
			Checkin:   booking.PreferredCheckin,
			Checkout:  booking.PreferredCheckout,
			Rooms:     labels,
		})
		if err != nil {
			return err
		}

		if err := sender.Send(booking.GuestEmail, "Your stay dates with Seabreeze Respite", html); err != nil {
			return fmt.Errorf("dates-of-stay send failed for booking %s: %w", p.BookingUUID, err)
		}

		return bookings.SetMetainfoFlag(ctx, booking, "sendDatesOfStayEmail.sent")
	}
}
