package bookings

import (
	"testing"

	"Backend-Seabreeze/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMissingSections(t *testing.T) {
	bookingID := primitive.NewObjectID()
	secA := models.Section{ID: primitive.NewObjectID(), Label: "Your stay", Order: 1, ModelType: models.SectionModelPage}
	secB := models.Section{ID: primitive.NewObjectID(), Label: "Funding", Order: 2, ModelType: models.SectionModelPage}

	t.Run("NewBookingGetsEverything", func(t *testing.T) {
		missing := MissingSections([]models.Section{secA, secB}, nil)
		require.Len(t, missing, 2)
	})

	t.Run("AlreadyClonedSectionsAreSkipped", func(t *testing.T) {
		cloned := secA.CloneForBooking(bookingID)
		missing := MissingSections([]models.Section{secA, secB}, []models.Section{cloned})
		require.Len(t, missing, 1)
		assert.Equal(t, secB.ID, missing[0].ID)
	})

	t.Run("UpToDateBookingIsNoop", func(t *testing.T) {
		existing := []models.Section{secA.CloneForBooking(bookingID), secB.CloneForBooking(bookingID)}
		assert.Empty(t, MissingSections([]models.Section{secA, secB}, existing))
	})

	t.Run("RemovedSchemaSectionIsNeverDeleted", func(t *testing.T) {
		// The schema dropped secB, the booking still holds its clone. Additive
		// sync leaves it alone and reports nothing missing.
		existing := []models.Section{secA.CloneForBooking(bookingID), secB.CloneForBooking(bookingID)}
		assert.Empty(t, MissingSections([]models.Section{secA}, existing))
	})

	t.Run("SectionsWithoutOriginAreIgnored", func(t *testing.T) {
		orphan := models.Section{ID: primitive.NewObjectID(), Label: "Hand-made", ModelType: models.SectionModelBooking, BookingID: bookingID}
		missing := MissingSections([]models.Section{secA}, []models.Section{orphan})
		require.Len(t, missing, 1)
		assert.Equal(t, secA.ID, missing[0].ID)
	})
}

func TestCloneForBooking(t *testing.T) {
	bookingID := primitive.NewObjectID()
	schema := models.Section{
		ID:        primitive.NewObjectID(),
		Label:     "Your stay",
		Order:     3,
		ModelType: models.SectionModelPage,
		PageID:    primitive.NewObjectID(),
	}

	clone := schema.CloneForBooking(bookingID)

	assert.True(t, clone.ID.IsZero())
	assert.Equal(t, schema.Label, clone.Label)
	assert.Equal(t, schema.Order, clone.Order)
	assert.Equal(t, models.SectionModelBooking, clone.ModelType)
	assert.Equal(t, bookingID, clone.BookingID)
	assert.Equal(t, schema.ID, clone.OrigSectionID)
	assert.True(t, clone.PageID.IsZero())
}
