package bookings

import (
	"testing"
	"time"

	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/answers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func typedQuestion(key string, qt models.QuestionType) models.Question {
	q := question(key, true)
	q.Type = qt
	return q
}

func TestBuildProjection(t *testing.T) {
	rooms := typedQuestion(models.KeyRoomSelection, models.RoomSelectionQuestion)
	stay := typedQuestion(models.KeyCheckInOut, models.DateRangeQuestion)
	checkin := typedQuestion(models.KeyCheckIn, models.DateQuestion)
	checkout := typedQuestion(models.KeyCheckOut, models.DateQuestion)
	infants := typedQuestion(models.KeyInfants, models.NumberQuestion)
	children := typedQuestion(models.KeyChildren, models.NumberQuestion)
	adults := typedQuestion(models.KeyAdults, models.NumberQuestion)
	animal := typedQuestion(models.KeyAssistanceAnimal, models.RadioQuestion)
	late := typedQuestion(models.KeyLateArrival, models.RadioQuestion)
	arrival := typedQuestion(models.KeyArrivalTime, models.TextQuestion)
	letter := typedQuestion(models.KeyApprovalLetter, models.FileQuestion)

	allQuestions := []models.Question{
		rooms, stay, checkin, checkout, infants, children, adults, animal, late, arrival, letter,
	}

	t.Run("FullBatch", func(t *testing.T) {
		pairs := []models.QaPair{
			answer(rooms, `[{"name":"Deluxe Suite","order":1}]`),
			answer(stay, "2022-12-01 - 2022-12-05"),
			answer(infants, "1"),
			answer(children, "2"),
			answer(adults, "3"),
			answer(animal, "Yes"),
			answer(late, "Yes"),
			answer(arrival, "7:30pm"),
			answer(letter, "drafts/abc/approval.pdf"),
		}

		proj, errs := BuildProjection(allQuestions, pairs)
		assert.Empty(t, errs)

		assert.True(t, proj.RoomsSet)
		require.Len(t, proj.Rooms, 1)
		assert.Equal(t, "Deluxe Suite", proj.Rooms[0].Name)

		require.NotNil(t, proj.Checkin)
		require.NotNil(t, proj.Checkout)
		assert.Equal(t, time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), *proj.Checkin)
		assert.Equal(t, time.Date(2022, 12, 5, 0, 0, 0, 0, time.UTC), *proj.Checkout)

		require.NotNil(t, proj.Infants)
		require.NotNil(t, proj.Children)
		require.NotNil(t, proj.Adults)
		require.NotNil(t, proj.Pets)
		assert.Equal(t, 1, *proj.Infants)
		assert.Equal(t, 2, *proj.Children)
		assert.Equal(t, 3, *proj.Adults)
		assert.Equal(t, 1, *proj.Pets)

		require.NotNil(t, proj.LateArrival)
		assert.True(t, *proj.LateArrival)
		require.NotNil(t, proj.ArrivalTime)
		assert.Equal(t, "7:30pm", *proj.ArrivalTime)

		require.Len(t, proj.Uploads, 1)
		assert.Equal(t, models.KeyApprovalLetter, proj.Uploads[0].Key)
		assert.Equal(t, "drafts/abc/approval.pdf", proj.Uploads[0].DraftPath)
	})

	t.Run("SameBatchProjectsSameValues", func(t *testing.T) {
		pairs := []models.QaPair{
			answer(stay, "2022-12-01 - 2022-12-05"),
			answer(adults, "3"),
		}
		first, _ := BuildProjection(allQuestions, pairs)
		second, _ := BuildProjection(allQuestions, pairs)
		assert.Equal(t, first, second)
	})

	t.Run("UntouchedFieldsStayNil", func(t *testing.T) {
		proj, errs := BuildProjection(allQuestions, []models.QaPair{answer(adults, "2")})
		assert.Empty(t, errs)
		assert.False(t, proj.RoomsSet)
		assert.Nil(t, proj.Checkin)
		assert.Nil(t, proj.Infants)
		assert.Nil(t, proj.LateArrival)
		require.NotNil(t, proj.Adults)
		assert.Equal(t, 2, *proj.Adults)
	})

	t.Run("CombinedRangeWinsOverSeparateDates", func(t *testing.T) {
		pairs := []models.QaPair{
			answer(stay, "2022-12-01 - 2022-12-05"),
			answer(checkin, "2023-03-03"),
			answer(checkout, "2023-03-08"),
		}
		proj, errs := BuildProjection(allQuestions, pairs)
		assert.Empty(t, errs)
		assert.Equal(t, time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), *proj.Checkin)
		assert.Equal(t, time.Date(2022, 12, 5, 0, 0, 0, 0, time.UTC), *proj.Checkout)
	})

	t.Run("SeparateDatesWhenNoRange", func(t *testing.T) {
		pairs := []models.QaPair{
			answer(checkin, "2023-03-03"),
			answer(checkout, "2023-03-08"),
		}
		proj, errs := BuildProjection(allQuestions, pairs)
		assert.Empty(t, errs)
		assert.Equal(t, time.Date(2023, 3, 3, 0, 0, 0, 0, time.UTC), *proj.Checkin)
		assert.Equal(t, time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC), *proj.Checkout)
	})

	t.Run("BadDateRangeCollectedAsStepError", func(t *testing.T) {
		pairs := []models.QaPair{
			answer(stay, "sometime in December"),
			answer(adults, "2"),
		}
		proj, errs := BuildProjection(allQuestions, pairs)
		require.Len(t, errs, 1)
		assert.Nil(t, proj.Checkin)
		require.NotNil(t, proj.Adults)
		assert.Equal(t, 2, *proj.Adults)
	})

	t.Run("BadStepDoesNotBlockOthers", func(t *testing.T) {
		pairs := []models.QaPair{
			answer(rooms, "not json"),
			answer(adults, "2"),
		}
		proj, errs := BuildProjection(allQuestions, pairs)
		require.Len(t, errs, 1)
		assert.False(t, proj.RoomsSet)
		require.NotNil(t, proj.Adults)
		assert.Equal(t, 2, *proj.Adults)
	})
}

func TestPlanRoomReconciliation(t *testing.T) {
	bookingID := primitive.NewObjectID()
	checkin := time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2022, 12, 5, 0, 0, 0, 0, time.UTC)
	merged := &models.Booking{
		ID:                bookingID,
		PreferredCheckin:  &checkin,
		PreferredCheckout: &checkout,
		Infants:           1,
		Children:          2,
		Adults:            3,
		Pets:              1,
		ArrivalTime:       "7:30pm",
		LateArrival:       true,
	}

	t.Run("UpsertsCarryMergedFields", func(t *testing.T) {
		plan := PlanRoomReconciliation(bookingID, []answers.RoomChoice{
			{Name: "Deluxe Suite", Order: 1},
			{Name: "Garden Room", Order: 2},
		}, merged)

		assert.Equal(t, 2, plan.StaleAbove)
		require.Len(t, plan.Upserts, 2)
		first := plan.Upserts[0]
		assert.Equal(t, bookingID, first.BookingID)
		assert.Equal(t, 1, first.Order)
		assert.Equal(t, "Deluxe Suite", first.Label)
		assert.Equal(t, &checkin, first.Checkin)
		assert.Equal(t, &checkout, first.Checkout)
		assert.Equal(t, 1, first.Infants)
		assert.Equal(t, 2, first.Children)
		assert.Equal(t, 3, first.Adults)
		assert.Equal(t, 1, first.Pets)
		assert.Equal(t, "7:30pm", first.ArrivalTime)
		assert.True(t, first.LateArrival)
		assert.Equal(t, "Garden Room", plan.Upserts[1].Label)
		assert.Equal(t, 2, plan.Upserts[1].Order)
	})

	t.Run("ShrinkingSelectionMarksHigherSlotsStale", func(t *testing.T) {
		// A booking that previously held 3 rooms and now selects 1: slot 1
		// is upserted, orders 2 and 3 fall above the stale bound.
		plan := PlanRoomReconciliation(bookingID, []answers.RoomChoice{
			{Name: "Deluxe Suite", Order: 1},
		}, merged)

		require.Len(t, plan.Upserts, 1)
		assert.Equal(t, 1, plan.StaleAbove)
	})

	t.Run("EmptySelectionDeletesEverySlot", func(t *testing.T) {
		plan := PlanRoomReconciliation(bookingID, nil, merged)
		assert.Empty(t, plan.Upserts)
		assert.Equal(t, 0, plan.StaleAbove)
	})

	t.Run("SamePlanEveryRun", func(t *testing.T) {
		choices := []answers.RoomChoice{{Name: "Deluxe Suite", Order: 1}}
		assert.Equal(t,
			PlanRoomReconciliation(bookingID, choices, merged),
			PlanRoomReconciliation(bookingID, choices, merged))
	})
}

func TestPetsCount(t *testing.T) {
	assert.Equal(t, 1, petsCount("Yes"))
	assert.Equal(t, 0, petsCount("No"))
	assert.Equal(t, 2, petsCount("2"))
	assert.Equal(t, 0, petsCount(""))
}

func TestMergeBookingFields(t *testing.T) {
	checkin := time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)
	arrival := "7:30pm"
	one, two, three := 1, 2, 3
	booking := &models.Booking{
		UUID:     "b-1",
		Adults:   5,
		Pets:     1,
		Children: 0,
	}

	merged := mergeBookingFields(booking, &Projection{
		Checkin:     &checkin,
		ArrivalTime: &arrival,
		Infants:     &one,
		Children:    &two,
		Adults:      &three,
	})

	// Untouched source booking.
	assert.Equal(t, 5, booking.Adults)

	assert.Equal(t, &checkin, merged.PreferredCheckin)
	assert.Nil(t, merged.PreferredCheckout)
	assert.Equal(t, "7:30pm", merged.ArrivalTime)
	assert.Equal(t, 1, merged.Infants)
	assert.Equal(t, 2, merged.Children)
	assert.Equal(t, 3, merged.Adults)
	// Pets untouched by this batch, kept from the booking.
	assert.Equal(t, 1, merged.Pets)
	assert.Equal(t, 1+2+3+1, merged.TotalGuests)
}
