package answers

import (
	"testing"
	"time"

	"Backend-Seabreeze/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoomSelection(t *testing.T) {
	t.Run("OrderedList", func(t *testing.T) {
		rooms, err := DecodeRoomSelection(`[{"name":"Deluxe Suite","order":1},{"name":"Garden Room","order":2}]`)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, "Deluxe Suite", rooms[0].Name)
		assert.Equal(t, 1, rooms[0].Order)
		assert.Equal(t, "Garden Room", rooms[1].Name)
		assert.Equal(t, 2, rooms[1].Order)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := DecodeRoomSelection("Deluxe Suite")
		assert.Error(t, err)
	})
}

func TestDecodeDateRange(t *testing.T) {
	t.Run("CombinedRange", func(t *testing.T) {
		r, err := DecodeDateRange("2022-12-01 - 2022-12-05")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), r.From)
		assert.Equal(t, time.Date(2022, 12, 5, 0, 0, 0, 0, time.UTC), r.To)
	})

	t.Run("MissingSeparator", func(t *testing.T) {
		_, err := DecodeDateRange("2022-12-01")
		assert.Error(t, err)
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := DecodeDateRange("2022-12-01 - someday")
		assert.Error(t, err)
	})
}

func TestDecodeDate(t *testing.T) {
	d, err := DecodeDate(" 2023-01-15 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), *d)

	_, err = DecodeDate("15/01/2023")
	assert.Error(t, err)
}

func TestDecodeCount(t *testing.T) {
	assert.Equal(t, 3, DecodeCount("3"))
	assert.Equal(t, 3, DecodeCount(" 3 "))
	assert.Equal(t, 0, DecodeCount(""))
	assert.Equal(t, 0, DecodeCount("none"))
}

func TestDecodeBool(t *testing.T) {
	assert.True(t, DecodeBool("Yes"))
	assert.True(t, DecodeBool("yes"))
	assert.True(t, DecodeBool("Y"))
	assert.True(t, DecodeBool("true"))
	assert.False(t, DecodeBool("No"))
	assert.False(t, DecodeBool(""))
}

func TestDecodeList(t *testing.T) {
	assert.Equal(t, []string{"Hoist", "Shower chair"}, DecodeList(`["Hoist","Shower chair"]`))
	// Plain scalar answers stay usable as a one-element list.
	assert.Equal(t, []string{"Hoist"}, DecodeList("Hoist"))
}

func TestDecode(t *testing.T) {
	t.Run("EmptyAnswerIsUntyped", func(t *testing.T) {
		v, err := Decode(models.DateRangeQuestion, "")
		require.NoError(t, err)
		assert.Nil(t, v.Range)
		assert.Equal(t, "", v.Text)
	})

	t.Run("TypedDispatch", func(t *testing.T) {
		v, err := Decode(models.NumberQuestion, "2")
		require.NoError(t, err)
		assert.Equal(t, 2, v.Count)

		v, err = Decode(models.DateRangeQuestion, "2022-12-01 - 2022-12-05")
		require.NoError(t, err)
		require.NotNil(t, v.Range)
		assert.Equal(t, 4*24*time.Hour, v.Range.To.Sub(v.Range.From))

		v, err = Decode(models.RadioQuestion, "Yes")
		require.NoError(t, err)
		assert.Equal(t, "Yes", v.Text)
	})

	t.Run("DecodeErrorPropagates", func(t *testing.T) {
		_, err := Decode(models.RoomSelectionQuestion, "not json")
		assert.Error(t, err)
	})
}
