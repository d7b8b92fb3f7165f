package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Template ---
// A template is a versioned questionnaire. Once a booking references it the
// existing pages/sections/questions are never rewritten; schema changes append
// new sections and questions instead.
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// --- Page ---
type Page struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TemplateID primitive.ObjectID `bson:"templateId" json:"templateId"`
	Order      int                `bson:"order" json:"order"`
}
