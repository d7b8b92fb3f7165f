package answers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Backend-Seabreeze/src/models"

	"github.com/spf13/cast"
)

// Raw answers arrive as strings: plain scalars, or JSON-encoded lists/objects
// for the structured question types. Every call site goes through the typed
// decode below instead of parsing ad hoc.

const dateLayout = "2006-01-02"

// RoomChoice is one entry of a room-selection answer.
type RoomChoice struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// DateRange is the decoded form of a combined check-in/check-out answer.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Value is the tagged union produced by Decode. Type tells which field is set.
type Value struct {
	Type  models.QuestionType
	Text  string
	List  []string
	Rooms []RoomChoice
	Range *DateRange
	Date  *time.Time
	Count int
	Bool  bool
}

// Decode parses a raw answer according to its question type.
func Decode(qt models.QuestionType, raw string) (*Value, error) {
	v := &Value{Type: qt, Text: raw}
	if raw == "" {
		return v, nil
	}

	switch qt {
	case models.RoomSelectionQuestion:
		rooms, err := DecodeRoomSelection(raw)
		if err != nil {
			return nil, err
		}
		v.Rooms = rooms
	case models.DateRangeQuestion:
		r, err := DecodeDateRange(raw)
		if err != nil {
			return nil, err
		}
		v.Range = r
	case models.DateQuestion:
		d, err := DecodeDate(raw)
		if err != nil {
			return nil, err
		}
		v.Date = d
	case models.NumberQuestion:
		v.Count = DecodeCount(raw)
	case models.CheckboxQuestion, models.EquipmentQuestion, models.CardSelectionQuestion:
		v.List = DecodeList(raw)
	default:
		// text, textarea, radio, file: keep the raw scalar
	}
	return v, nil
}

// DecodeRoomSelection parses the ordered room list, e.g.
// [{"name":"Deluxe Suite","order":1}].
func DecodeRoomSelection(raw string) ([]RoomChoice, error) {
	var rooms []RoomChoice
	if err := json.Unmarshal([]byte(raw), &rooms); err != nil {
		return nil, fmt.Errorf("bad room selection answer: %w", err)
	}
	return rooms, nil
}

// DecodeDateRange parses "2022-12-01 - 2022-12-05".
func DecodeDateRange(raw string) (*DateRange, error) {
	parts := strings.Split(raw, " - ")
	if len(parts) != 2 {
		return nil, fmt.Errorf("bad date range answer: %q", raw)
	}
	from, err := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("bad range start: %w", err)
	}
	to, err := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("bad range end: %w", err)
	}
	return &DateRange{From: from, To: to}, nil
}

// DecodeDate parses a single date answer.
func DecodeDate(raw string) (*time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("bad date answer: %w", err)
	}
	return &d, nil
}

// DecodeCount coerces a loose numeric answer ("3", 3, "") to an int.
func DecodeCount(raw string) int {
	return cast.ToInt(strings.TrimSpace(raw))
}

// DecodeBool accepts the usual truthy spellings plus the form's "Yes".
func DecodeBool(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "yes" || s == "y" {
		return true
	}
	return cast.ToBool(s)
}

// DecodeList parses a JSON string array, falling back to a one-element list
// for plain scalar answers.
func DecodeList(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{raw}
	}
	return list
}
