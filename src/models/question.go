package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType enumerates the supported field kinds.
type QuestionType string

const (
	TextQuestion          QuestionType = "text"
	TextareaQuestion      QuestionType = "textarea"
	RadioQuestion         QuestionType = "radio"
	CheckboxQuestion      QuestionType = "checkbox"
	DateQuestion          QuestionType = "date"
	DateRangeQuestion     QuestionType = "date-range"
	NumberQuestion        QuestionType = "number"
	EquipmentQuestion     QuestionType = "equipment"
	CardSelectionQuestion QuestionType = "card-selection"
	FileQuestion          QuestionType = "file"
	RoomSelectionQuestion QuestionType = "room-selection"
)

// Well-known question keys. Matching always goes through the key when one is
// set; display text is mutable presentation copy and only used as a fallback.
const (
	KeyFundingSource       = "funding_source"
	KeyRoomSelection       = "room_selection"
	KeyCheckInOut          = "check_in_out"
	KeyCheckIn             = "check_in"
	KeyCheckOut            = "check_out"
	KeyInfants             = "infants"
	KeyChildren            = "children"
	KeyAdults              = "adults"
	KeyAssistanceAnimal    = "assistance_animal"
	KeyLateArrival         = "late_arrival"
	KeyArrivalTime         = "arrival_time"
	KeyApprovalLetter      = "ndis_approval_letter"
	KeyCarePlan            = "care_plan"
	KeyAnimalCertificate   = "assistance_animal_certificate"
	KeyFullAccommodation   = "full_accommodation_package"
	KeyCoordinatorEmail    = "coordinator_email"
	KeySupportPackage      = "support_package"
)

// --- Question ---
type Question struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SectionID         primitive.ObjectID `bson:"sectionId" json:"sectionId"`
	Order             int                `bson:"order" json:"order"`
	Type              QuestionType       `bson:"type" json:"type"`
	QuestionText      string             `bson:"questionText" json:"questionText"`
	QuestionKey       string             `bson:"questionKey,omitempty" json:"questionKey,omitempty"`
	Required          bool               `bson:"required" json:"required"`
	SecondBookingOnly bool               `bson:"secondBookingOnly,omitempty" json:"secondBookingOnly,omitempty"`
	NdisOnly          bool               `bson:"ndisOnly,omitempty" json:"ndisOnly,omitempty"`
	Options           []string           `bson:"options,omitempty" json:"options,omitempty"`

	// Dependencies are populated by the schema loader, not stored inline.
	Dependencies []QuestionDependency `bson:"-" json:"dependencies,omitempty"`
}

// --- QuestionDependency ---
// A directed edge question -> dependency with an expected answer. A question
// with dependencies is applicable once ANY dependency target matches.
type QuestionDependency struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionID   primitive.ObjectID `bson:"questionId" json:"questionId"`
	DependencyID primitive.ObjectID `bson:"dependencyId" json:"dependencyId"`
	Answer       string             `bson:"answer" json:"answer"`
}
