package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/schema"
	"Backend-Seabreeze/src/services/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBookingNotFound = errors.New("booking not found")

// AnswerInput is one entry of a submitted answer batch. Either the question id
// or its key identifies the target question.
type AnswerInput struct {
	QuestionID  string `json:"questionId,omitempty"`
	QuestionKey string `json:"questionKey,omitempty" validate:"required_without=QuestionID"`
	Answer      string `json:"answer"`
}

// CreateBooking inserts a booking and clones the template's sections so the
// origSectionId chain back to the schema exists from day one.
func CreateBooking(ctx context.Context, booking *models.Booking, templateID primitive.ObjectID) error {
	graph, err := schema.LoadTemplate(ctx, templateID)
	if err != nil {
		return err
	}

	now := time.Now()
	booking.ID = primitive.NewObjectID()
	if booking.UUID == "" {
		booking.UUID = uuid.NewString()
	}
	if booking.Status.Name == "" {
		booking.Status = models.BookingStatus{Name: models.StatusDraft}
	}
	if booking.Metainfo == nil {
		booking.Metainfo = models.Metainfo{}
	}
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := DB.BookingCollection.InsertOne(ctx, booking); err != nil {
		return err
	}

	sections := graph.AllSections()
	if len(sections) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(sections))
	for _, s := range sections {
		docs = append(docs, s.CloneForBooking(booking.ID))
	}
	_, err = DB.SectionCollection.InsertMany(ctx, docs)
	return err
}

// GetBookingByUUID loads a booking by its public uuid.
func GetBookingByUUID(ctx context.Context, bookingUUID string) (*models.Booking, error) {
	var booking models.Booking
	err := DB.BookingCollection.FindOne(ctx, bson.M{"uuid": bookingUUID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// GetBookings lists bookings with the standard pagination envelope.
func GetBookings(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"guestName": bson.M{"$regex": params.Search, "$options": "i"}},
			bson.M{"guestEmail": bson.M{"$regex": params.Search, "$options": "i"}},
		}
	}

	total, err := DB.BookingCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort := bson.D{}
	for field, order := range params.GetSortOrder() {
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(sort)

	cur, err := DB.BookingCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var list []models.Booking
	if err = cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(list, total, params), nil
}

// GetBookingSections returns the booking-owned sections, ordered.
func GetBookingSections(ctx context.Context, bookingID primitive.ObjectID) ([]models.Section, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := DB.SectionCollection.Find(ctx, bson.M{
		"bookingId": bookingID,
		"modelType": models.SectionModelBooking,
	}, opts)
	if err != nil {
		return nil, err
	}
	var sections []models.Section
	if err = cur.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetBookingQaPairs flattens the answers across the given sections.
func GetBookingQaPairs(ctx context.Context, sections []models.Section) ([]models.QaPair, error) {
	if len(sections) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	cur, err := DB.QaPairCollection.Find(ctx, bson.M{"sectionId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var pairs []models.QaPair
	if err = cur.All(ctx, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// GetBookingRooms returns the booking's room rows ordered by slot.
func GetBookingRooms(ctx context.Context, bookingID primitive.ObjectID) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := DB.RoomCollection.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return nil, err
	}
	var rooms []models.Room
	if err = cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SetStatus records a lifecycle transition on the booking.
func SetStatus(ctx context.Context, bookingID primitive.ObjectID, name string) error {
	_, err := DB.BookingCollection.UpdateOne(ctx,
		bson.M{"_id": bookingID},
		bson.M{"$set": bson.M{"status": models.BookingStatus{Name: name}, "updatedAt": time.Now()}})
	return err
}

// SetMetainfoFlag persists one idempotency flag and mirrors it on the
// in-memory booking. Flags are monotonic: this only ever writes true, never
// resets.
func SetMetainfoFlag(ctx context.Context, booking *models.Booking, flagPath string) error {
	_, err := DB.BookingCollection.UpdateOne(ctx,
		bson.M{"_id": booking.ID},
		bson.M{"$set": bson.M{"metainfo." + flagPath: true}})
	if err != nil {
		return err
	}
	if booking.Metainfo == nil {
		booking.Metainfo = models.Metainfo{}
	}
	booking.Metainfo.SetFlag(flagPath)
	return nil
}

// SubmitAnswers upserts a batch of answers into the booking's sections, then
// runs the dissemination processor over the saved pairs. Returns the refreshed
// booking and the pairs that were written.
func SubmitAnswers(ctx context.Context, bookingUUID string, items []AnswerInput, store storage.Storage) (*models.Booking, []models.QaPair, error) {
	booking, err := GetBookingByUUID(ctx, bookingUUID)
	if err != nil {
		return nil, nil, err
	}

	sections, err := GetBookingSections(ctx, booking.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(sections) == 0 {
		return nil, nil, fmt.Errorf("booking %s has no sections to answer into", bookingUUID)
	}
	sectionByOrig := make(map[primitive.ObjectID]models.Section, len(sections))
	for _, s := range sections {
		sectionByOrig[s.OrigSectionID] = s
	}

	now := time.Now()
	var saved []models.QaPair
	for _, item := range items {
		question, err := resolveQuestion(ctx, item)
		if err != nil {
			return nil, saved, err
		}
		section, ok := sectionByOrig[question.SectionID]
		if !ok {
			return nil, saved, fmt.Errorf("booking %s has no section for question %s", bookingUUID, question.ID.Hex())
		}

		filter := bson.M{"sectionId": section.ID, "questionId": question.ID}
		update := bson.M{
			"$set":         bson.M{"answer": item.Answer, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		}
		if _, err := DB.QaPairCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return nil, saved, err
		}

		var pair models.QaPair
		if err := DB.QaPairCollection.FindOne(ctx, filter).Decode(&pair); err != nil {
			return nil, saved, err
		}
		saved = append(saved, pair)
	}

	if err := DisseminateChanges(ctx, booking, saved, store); err != nil {
		return booking, saved, err
	}
	return booking, saved, nil
}

func resolveQuestion(ctx context.Context, item AnswerInput) (*models.Question, error) {
	var filter bson.M
	switch {
	case item.QuestionID != "":
		id, err := primitive.ObjectIDFromHex(item.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("invalid question id %q", item.QuestionID)
		}
		filter = bson.M{"_id": id}
	case item.QuestionKey != "":
		filter = bson.M{"questionKey": item.QuestionKey}
	default:
		return nil, errors.New("answer entry needs a question id or key")
	}

	var question models.Question
	if err := DB.QuestionCollection.FindOne(ctx, filter).Decode(&question); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, schema.ErrSchemaNotFound
		}
		return nil, err
	}
	return &question, nil
}

// TemplateView is the combined payload for the booking-template read: the
// schema graph, the booking's sections and answers, and the completion
// verdict.
type TemplateView struct {
	Booking    models.Booking       `json:"booking"`
	Template   schema.TemplateGraph `json:"template"`
	Sections   []models.Section     `json:"sections"`
	Answers    []models.QaPair      `json:"answers"`
	Completion CompletionResult     `json:"completion"`
}

// GetTemplateView syncs the booking's sections against the schema, then
// evaluates completion. A sync failure is non-fatal: the view is served from
// the sections that already exist.
func GetTemplateView(ctx context.Context, bookingUUID string) (*TemplateView, error) {
	booking, err := GetBookingByUUID(ctx, bookingUUID)
	if err != nil {
		return nil, err
	}

	SyncSections(ctx, booking.ID)

	sections, err := GetBookingSections(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	pairs, err := GetBookingQaPairs(ctx, sections)
	if err != nil {
		return nil, err
	}

	graph, err := schema.ResolveBookingTemplate(ctx, sections)
	if err != nil {
		return nil, err
	}

	completion := EvaluateBookingCompletion(sections, graph.AllQuestions(), pairs, booking.SecondBooking)

	return &TemplateView{
		Booking:    *booking,
		Template:   *graph,
		Sections:   sections,
		Answers:    pairs,
		Completion: completion,
	}, nil
}
