package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section model types. A "page" section belongs to a template page; a "booking"
// section is the per-booking clone that actually holds answers.
const (
	SectionModelPage    = "page"
	SectionModelBooking = "booking"
)

// --- Section ---
type Section struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Label     string             `bson:"label" json:"label"`
	Order     int                `bson:"order" json:"order"`
	ModelType string             `bson:"modelType" json:"modelType"`

	// PageID is set for schema sections, BookingID for booking sections.
	PageID    primitive.ObjectID `bson:"pageId,omitempty" json:"pageId,omitempty"`
	BookingID primitive.ObjectID `bson:"bookingId,omitempty" json:"bookingId,omitempty"`

	// OrigSectionID is a weak back-reference from a booking section to the
	// schema section it was cloned from. It is how a booking finds its
	// template again (bookings never store a template id directly).
	OrigSectionID primitive.ObjectID `bson:"origSectionId,omitempty" json:"origSectionId,omitempty"`
}

// CloneForBooking builds the booking-owned copy of a schema section.
func (s Section) CloneForBooking(bookingID primitive.ObjectID) Section {
	return Section{
		Label:         s.Label,
		Order:         s.Order,
		ModelType:     SectionModelBooking,
		BookingID:     bookingID,
		OrigSectionID: s.ID,
	}
}
