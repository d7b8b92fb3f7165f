package jobs

import (
	"context"
	"encoding/json"
	"log"

	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/storage"

	"github.com/hibiken/asynq"
)

// HandleDisseminate re-runs the dissemination processor over a booking's full
// answer set. Safe to repeat: the processor is idempotent.
func HandleDisseminate(store storage.Storage) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p BookingPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		booking, err := bookings.GetBookingByUUID(ctx, p.BookingUUID)
		if err != nil {
			return err
		}
		sections, err := bookings.GetBookingSections(ctx, booking.ID)
		if err != nil {
			return err
		}
		pairs, err := bookings.GetBookingQaPairs(ctx, sections)
		if err != nil {
			return err
		}

		if err := bookings.DisseminateChanges(ctx, booking, pairs, store); err != nil {
			return err
		}
		log.Printf("[jobs] disseminated booking=%s pairs=%d", p.BookingUUID, len(pairs))
		return nil
	}
}
