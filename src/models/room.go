package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Room ---
// Denormalized per-stay snapshot derived from answers. One room per "order
// slot" per booking; the dissemination processor updates-or-creates by
// (bookingId, order) so re-runs never duplicate rows.
type Room struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BookingID primitive.ObjectID `bson:"bookingId" json:"bookingId"`
	Order     int                `bson:"order" json:"order"`
	Label     string             `bson:"label" json:"label"`

	Checkin  *time.Time `bson:"checkin,omitempty" json:"checkin,omitempty"`
	Checkout *time.Time `bson:"checkout,omitempty" json:"checkout,omitempty"`

	Infants     int    `bson:"infants" json:"infants"`
	Children    int    `bson:"children" json:"children"`
	Adults      int    `bson:"adults" json:"adults"`
	Pets        int    `bson:"pets" json:"pets"`
	ArrivalTime string `bson:"arrivalTime,omitempty" json:"arrivalTime,omitempty"`
	LateArrival bool   `bson:"lateArrival" json:"lateArrival"`
}
