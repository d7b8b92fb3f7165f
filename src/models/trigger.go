package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Email template discriminators. Each one selects a distinct rendering
// strategy in the trigger dispatcher.
const (
	TemplateFunder            = "funder"
	TemplateInternal          = "internal"
	TemplateExternal          = "external"
	TemplateBookingHighlights = "booking-highlights"
	TemplateFoundationStay    = "foundation-stay"
)

// TriggerQuestion identifies one question a rule watches, by key when the
// schema is keyed, by literal display text as a legacy fallback. Answer nil
// means "fires on any non-empty answer".
type TriggerQuestion struct {
	QuestionID   primitive.ObjectID `bson:"questionId,omitempty" json:"questionId,omitempty"`
	QuestionKey  string             `bson:"questionKey,omitempty" json:"questionKey,omitempty"`
	QuestionText string             `bson:"questionText,omitempty" json:"questionText,omitempty"`
	Answer       *string            `bson:"answer,omitempty" json:"answer,omitempty"`
}

// --- Trigger ---
// A configured notification rule. The engine only reads these; the single
// mutation it performs is bumping SentCount after a successful dispatch.
type Trigger struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	TriggerQuestions []TriggerQuestion  `bson:"triggerQuestions" json:"triggerQuestions"`
	Recipient        string             `bson:"recipient,omitempty" json:"recipient,omitempty"`
	EmailTemplate    string             `bson:"emailTemplate" json:"emailTemplate"`
	Enabled          bool               `bson:"enabled" json:"enabled"`
	SentCount        int64              `bson:"sentCount" json:"sentCount"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}
