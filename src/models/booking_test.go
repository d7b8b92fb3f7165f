package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMetainfoFlags(t *testing.T) {
	t.Run("MissingKeysDefaultToFalse", func(t *testing.T) {
		var m Metainfo
		assert.False(t, m.Flag("pdf_export"))

		m = Metainfo{}
		assert.False(t, m.Flag("pdf_export"))
		assert.False(t, m.Flag("triggered_emails.on_submit"))
	})

	t.Run("SetFlagCreatesNestedMaps", func(t *testing.T) {
		m := Metainfo{}
		m.SetFlag("triggered_emails.on_submit")

		assert.True(t, m.Flag("triggered_emails.on_submit"))
		assert.False(t, m.Flag("triggered_emails.on_booking_confirmed"))

		m.SetFlag("triggered_emails.on_booking_confirmed")
		assert.True(t, m.Flag("triggered_emails.on_submit"))
		assert.True(t, m.Flag("triggered_emails.on_booking_confirmed"))
	})

	t.Run("TopLevelFlag", func(t *testing.T) {
		m := Metainfo{}
		m.SetFlag("pdf_export")
		assert.True(t, m.Flag("pdf_export"))
	})

	t.Run("ReadsBsonDecodedMaps", func(t *testing.T) {
		// Nested documents come back from the driver as primitive.M.
		m := Metainfo{
			"sendDatesOfStayEmail": primitive.M{"sent": true},
			"sent_trigger":         primitive.M{"64b0c0ffee": false},
		}
		assert.True(t, m.Flag("sendDatesOfStayEmail.sent"))
		assert.False(t, m.Flag("sent_trigger.64b0c0ffee"))
		assert.False(t, m.Flag("sent_trigger.unknown"))
	})

	t.Run("SetFlagOnBsonDecodedMap", func(t *testing.T) {
		m := Metainfo{"triggered_emails": primitive.M{"on_submit": true}}
		m.SetFlag("triggered_emails.on_booking_confirmed")
		assert.True(t, m.Flag("triggered_emails.on_booking_confirmed"))
		assert.True(t, m.Flag("triggered_emails.on_submit"))
	})

	t.Run("NonBoolLeafIsFalse", func(t *testing.T) {
		m := Metainfo{"notifications": "yes"}
		assert.False(t, m.Flag("notifications"))
		assert.False(t, m.Flag("notifications.sent"))
	})
}

func TestQaPairAnswered(t *testing.T) {
	assert.False(t, QaPair{}.Answered())
	assert.True(t, QaPair{Answer: "Yes"}.Answered())
}
