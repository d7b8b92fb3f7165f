package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking status names used by the engine's lifecycle points.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusConfirmed = "confirmed"
	StatusAmended   = "amended"
)

// BookingStatus is stored as a nested state object, not a bare string.
type BookingStatus struct {
	Name string `bson:"name" json:"name"`
}

// Metainfo is the booking's bag of idempotency flags, e.g.
// "triggered_emails.on_submit" or "sendDatesOfStayEmail.sent". Keys are
// additive and read with a default: a missing key is simply false. Flags only
// move false -> true except by explicit administrative reset.
type Metainfo map[string]interface{}

// Flag reads a dotted flag path, defaulting to false for any missing segment.
func (m Metainfo) Flag(path string) bool {
	if m == nil {
		return false
	}
	var cur interface{} = map[string]interface{}(m)
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			cur = node[part]
		case primitive.M:
			cur = node[part]
		case Metainfo:
			cur = node[part]
		default:
			return false
		}
	}
	b, ok := cur.(bool)
	return ok && b
}

// SetFlag sets a dotted flag path to true, creating intermediate maps.
func (m Metainfo) SetFlag(path string) {
	parts := strings.Split(path, ".")
	cur := map[string]interface{}(m)
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]interface{})
		if !ok {
			if pm, isPM := cur[part].(primitive.M); isPM {
				next = map[string]interface{}(pm)
			} else {
				next = map[string]interface{}{}
			}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = true
}

// --- Booking ---
// Aggregate root. Sections, qa-pairs, rooms and equipment live in their own
// collections keyed by the booking id; the occupancy/arrival fields below are
// the normalized projection maintained by the dissemination processor.
type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UUID       string             `bson:"uuid" json:"uuid"`
	GuestName  string             `bson:"guestName" json:"guestName"`
	GuestEmail string             `bson:"guestEmail" json:"guestEmail"`
	Status     BookingStatus      `bson:"status" json:"status"`
	Metainfo   Metainfo           `bson:"metainfo,omitempty" json:"metainfo,omitempty"`

	PreferredCheckin  *time.Time `bson:"preferredCheckin,omitempty" json:"preferredCheckin,omitempty"`
	PreferredCheckout *time.Time `bson:"preferredCheckout,omitempty" json:"preferredCheckout,omitempty"`
	LateArrival       bool       `bson:"lateArrival" json:"lateArrival"`
	ArrivalTime       string     `bson:"arrivalTime,omitempty" json:"arrivalTime,omitempty"`
	Infants           int        `bson:"infants" json:"infants"`
	Children          int        `bson:"children" json:"children"`
	Adults            int        `bson:"adults" json:"adults"`
	Pets              int        `bson:"pets" json:"pets"`
	TotalGuests       int        `bson:"totalGuests" json:"totalGuests"`
	SecondBooking     bool       `bson:"secondBooking,omitempty" json:"secondBooking,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// --- BookingEquipment ---
type BookingEquipment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BookingID     primitive.ObjectID `bson:"bookingId" json:"bookingId"`
	EquipmentName string             `bson:"equipmentName" json:"equipmentName"`
	DateFrom      *time.Time         `bson:"dateFrom,omitempty" json:"dateFrom,omitempty"`
	DateTo        *time.Time         `bson:"dateTo,omitempty" json:"dateTo,omitempty"`
}
