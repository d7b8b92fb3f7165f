package jobs

import (
	"context"
	"encoding/json"
	"log"

	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/exports"
	"Backend-Seabreeze/src/services/storage"

	"github.com/hibiken/asynq"
)

// HandlePdfExport prints the booking summary PDF once per booking, guarded by
// the pdf_export flag.
func HandlePdfExport(store *storage.LocalStorage) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p BookingPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return err
		}

		booking, err := bookings.GetBookingByUUID(ctx, p.BookingUUID)
		if err != nil {
			return err
		}
		if booking.Metainfo.Flag("pdf_export") {
			return nil
		}

		path, err := exports.ExportBookingPDF(ctx, booking, store)
		if err != nil {
			return err
		}
		log.Printf("[jobs] pdf exported booking=%s path=%s", p.BookingUUID, path)

		return bookings.SetMetainfoFlag(ctx, booking, "pdf_export")
	}
}
