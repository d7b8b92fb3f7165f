package jobs

import (
	"context"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/bookings"
	"Backend-Seabreeze/src/services/schema"
)

// loadBookingAnswers assembles the answer view a trigger pass needs: the
// booking, and its answers indexed against the originating schema's questions.
func loadBookingAnswers(ctx context.Context, bookingUUID string) (*models.Booking, *bookings.AnswerSet, error) {
	booking, err := bookings.GetBookingByUUID(ctx, bookingUUID)
	if err != nil {
		return nil, nil, err
	}

	sections, err := bookings.GetBookingSections(ctx, booking.ID)
	if err != nil {
		return nil, nil, err
	}
	pairs, err := bookings.GetBookingQaPairs(ctx, sections)
	if err != nil {
		return nil, nil, err
	}

	graph, err := schema.ResolveBookingTemplate(ctx, sections)
	if err != nil {
		return nil, nil, err
	}

	return booking, bookings.NewAnswerSet(graph.AllQuestions(), pairs), nil
}
