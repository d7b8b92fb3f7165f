package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- QaPair ---
// One answer to one question inside a booking section. The raw answer is kept
// as the string the client submitted: a scalar, or a JSON-encoded list/object
// for the structured question types. Re-submits overwrite in place.
type QaPair struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SectionID  primitive.ObjectID `bson:"sectionId" json:"sectionId"`
	QuestionID primitive.ObjectID `bson:"questionId" json:"questionId"`
	Answer     string             `bson:"answer" json:"answer"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Answered reports whether the pair carries a non-empty value.
func (q QaPair) Answered() bool {
	return q.Answer != ""
}
