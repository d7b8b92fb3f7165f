package bookings

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/answers"
	"Backend-Seabreeze/src/services/storage"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UploadKeys are the file-bearing question keys whose uploads get relocated
// from the draft area to the booking's permanent folder.
var UploadKeys = []string{
	models.KeyApprovalLetter,
	models.KeyCarePlan,
	models.KeyAnimalCertificate,
}

// Upload is one file relocation the projection asks for.
type Upload struct {
	Key       string
	DraftPath string
}

// Projection is what a batch of answers says about normalized booking state.
// Nil pointer fields mean "this batch did not touch that field"; re-running
// the same batch therefore produces the same writes.
type Projection struct {
	Rooms    []answers.RoomChoice
	RoomsSet bool

	Checkin  *time.Time
	Checkout *time.Time

	ArrivalTime *string
	LateArrival *bool
	Infants     *int
	Children    *int
	Adults      *int
	Pets        *int

	Uploads []Upload
}

// decodeKey runs the typed answer decoder over a keyed answer. Nil value for
// an unanswered question.
func decodeKey(set *AnswerSet, key string, qt models.QuestionType) (*answers.Value, error) {
	raw := set.ByKey(key)
	if raw == "" {
		return nil, nil
	}
	return answers.Decode(qt, raw)
}

// BuildProjection maps raw answers onto the projection, keyed strictly off
// questionKey. Field steps are independent: a bad value in one step is
// collected as an error and the rest still apply.
func BuildProjection(questions []models.Question, pairs []models.QaPair) (*Projection, []error) {
	set := NewAnswerSet(questions, pairs)
	proj := &Projection{}
	var errs []error

	if v, err := decodeKey(set, models.KeyRoomSelection, models.RoomSelectionQuestion); err != nil {
		errs = append(errs, fmt.Errorf("room selection: %w", err))
	} else if v != nil {
		proj.Rooms = v.Rooms
		proj.RoomsSet = true
	}

	// The combined date-range answer takes precedence over the two separate
	// date answers when both exist.
	if v, err := decodeKey(set, models.KeyCheckInOut, models.DateRangeQuestion); err != nil {
		errs = append(errs, fmt.Errorf("check in/out: %w", err))
	} else if v != nil {
		proj.Checkin = &v.Range.From
		proj.Checkout = &v.Range.To
	}
	if proj.Checkin == nil {
		if v, err := decodeKey(set, models.KeyCheckIn, models.DateQuestion); err != nil {
			errs = append(errs, fmt.Errorf("check in: %w", err))
		} else if v != nil {
			proj.Checkin = v.Date
		}
		if v, err := decodeKey(set, models.KeyCheckOut, models.DateQuestion); err != nil {
			errs = append(errs, fmt.Errorf("check out: %w", err))
		} else if v != nil {
			proj.Checkout = v.Date
		}
	}

	if raw := set.ByKey(models.KeyArrivalTime); raw != "" {
		proj.ArrivalTime = &raw
	}
	if raw := set.ByKey(models.KeyLateArrival); raw != "" {
		v := answers.DecodeBool(raw)
		proj.LateArrival = &v
	}

	for key, target := range map[string]**int{
		models.KeyInfants:  &proj.Infants,
		models.KeyChildren: &proj.Children,
		models.KeyAdults:   &proj.Adults,
	} {
		if v, _ := decodeKey(set, key, models.NumberQuestion); v != nil {
			n := v.Count
			*target = &n
		}
	}
	if raw := set.ByKey(models.KeyAssistanceAnimal); raw != "" {
		n := petsCount(raw)
		proj.Pets = &n
	}

	for _, key := range UploadKeys {
		if raw := set.ByKey(key); raw != "" {
			proj.Uploads = append(proj.Uploads, Upload{Key: key, DraftPath: raw})
		}
	}

	return proj, errs
}

// RoomReconciliation is the write plan for a booking's room set: one upsert
// per selected slot, and the order bound above which stale slots get deleted.
type RoomReconciliation struct {
	Upserts    []models.Room
	StaleAbove int
}

// PlanRoomReconciliation derives the room writes from the selected rooms and
// the merged booking fields. Every selected slot is an upsert keyed by
// (bookingId, order); only slots beyond the current selection count are ever
// deleted, so the plan for the same selection is the same every run.
func PlanRoomReconciliation(bookingID primitive.ObjectID, choices []answers.RoomChoice, merged *models.Booking) RoomReconciliation {
	plan := RoomReconciliation{StaleAbove: len(choices)}
	for _, choice := range choices {
		plan.Upserts = append(plan.Upserts, models.Room{
			BookingID:   bookingID,
			Order:       choice.Order,
			Label:       choice.Name,
			Checkin:     merged.PreferredCheckin,
			Checkout:    merged.PreferredCheckout,
			Infants:     merged.Infants,
			Children:    merged.Children,
			Adults:      merged.Adults,
			Pets:        merged.Pets,
			ArrivalTime: merged.ArrivalTime,
			LateArrival: merged.LateArrival,
		})
	}
	return plan
}

// petsCount accepts either a count or a yes/no assistance-animal answer.
func petsCount(raw string) int {
	if n := cast.ToInt(raw); n > 0 {
		return n
	}
	if answers.DecodeBool(raw) {
		return 1
	}
	return 0
}

// DisseminateChanges projects a saved answer batch into rooms, booking fields,
// equipment dates and file placement. Idempotent: rooms are keyed by
// (booking, order), uploads are copy-if-absent, and booking fields converge on
// the same values for the same input. Room update/create/delete runs in one
// transaction so a concurrent reader never sees a half-reconciled room set.
func DisseminateChanges(ctx context.Context, booking *models.Booking, pairs []models.QaPair, store storage.Storage) error {
	questions, err := questionsForPairs(ctx, pairs)
	if err != nil {
		return err
	}

	proj, stepErrs := BuildProjection(questions, pairs)
	for _, e := range stepErrs {
		// Field mappings are independent; log and keep going.
		log.Printf("[disseminate] step failed booking=%s: %v", booking.UUID, e)
	}

	merged := mergeBookingFields(booking, proj)

	err = DB.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if proj.RoomsSet {
			plan := PlanRoomReconciliation(booking.ID, proj.Rooms, merged)
			for _, room := range plan.Upserts {
				update := bson.M{"$set": bson.M{
					"label":       room.Label,
					"checkin":     room.Checkin,
					"checkout":    room.Checkout,
					"infants":     room.Infants,
					"children":    room.Children,
					"adults":      room.Adults,
					"pets":        room.Pets,
					"arrivalTime": room.ArrivalTime,
					"lateArrival": room.LateArrival,
				}}
				_, err := DB.RoomCollection.UpdateOne(sc,
					bson.M{"bookingId": room.BookingID, "order": room.Order},
					update, options.Update().SetUpsert(true))
				if err != nil {
					return nil, err
				}
			}

			// The one destructive step: drop stale order slots beyond the
			// currently selected room count.
			_, err := DB.RoomCollection.DeleteMany(sc, bson.M{
				"bookingId": booking.ID,
				"order":     bson.M{"$gt": plan.StaleAbove},
			})
			if err != nil {
				return nil, err
			}
		}

		_, err := DB.BookingCollection.UpdateOne(sc,
			bson.M{"_id": booking.ID},
			bson.M{"$set": bson.M{
				"preferredCheckin":  merged.PreferredCheckin,
				"preferredCheckout": merged.PreferredCheckout,
				"lateArrival":       merged.LateArrival,
				"arrivalTime":       merged.ArrivalTime,
				"infants":           merged.Infants,
				"children":          merged.Children,
				"adults":            merged.Adults,
				"pets":              merged.Pets,
				"totalGuests":       merged.TotalGuests,
				"updatedAt":         time.Now(),
			}})
		return nil, err
	})
	if err != nil {
		return err
	}
	*booking = *merged

	if proj.Checkin != nil && proj.Checkout != nil {
		// Backfill equipment rows that never got explicit dates.
		_, err := DB.BookingEquipmentCollection.UpdateMany(ctx,
			bson.M{"bookingId": booking.ID, "dateFrom": nil},
			bson.M{"$set": bson.M{"dateFrom": proj.Checkin, "dateTo": proj.Checkout}})
		if err != nil {
			log.Printf("[disseminate] equipment backfill failed booking=%s: %v", booking.UUID, err)
		}
	}

	relocateUploads(booking, proj.Uploads, store)
	return nil
}

// mergeBookingFields overlays the projection's set fields on the booking's
// current values and recomputes totalGuests from the merged counts.
func mergeBookingFields(booking *models.Booking, proj *Projection) *models.Booking {
	merged := *booking
	if proj.Checkin != nil {
		merged.PreferredCheckin = proj.Checkin
	}
	if proj.Checkout != nil {
		merged.PreferredCheckout = proj.Checkout
	}
	if proj.ArrivalTime != nil {
		merged.ArrivalTime = *proj.ArrivalTime
	}
	if proj.LateArrival != nil {
		merged.LateArrival = *proj.LateArrival
	}
	if proj.Infants != nil {
		merged.Infants = *proj.Infants
	}
	if proj.Children != nil {
		merged.Children = *proj.Children
	}
	if proj.Adults != nil {
		merged.Adults = *proj.Adults
	}
	if proj.Pets != nil {
		merged.Pets = *proj.Pets
	}
	merged.TotalGuests = merged.Infants + merged.Children + merged.Adults + merged.Pets
	return &merged
}

// relocateUploads copies draft files into the booking's permanent folder when
// they are not already there. Failures are per-file and non-fatal.
func relocateUploads(booking *models.Booking, uploads []Upload, store storage.Storage) {
	if store == nil {
		return
	}
	for _, up := range uploads {
		dst := fmt.Sprintf("bookings/%s/%s", booking.UUID, path.Base(up.DraftPath))
		exists, err := store.Exists(dst)
		if err != nil {
			log.Printf("[disseminate] upload stat failed key=%s: %v", up.Key, err)
			continue
		}
		if exists {
			continue
		}
		if err := store.Copy(up.DraftPath, dst); err != nil {
			log.Printf("[disseminate] upload copy failed key=%s: %v", up.Key, err)
		}
	}
}

func questionsForPairs(ctx context.Context, pairs []models.QaPair) ([]models.Question, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(pairs))
	for _, p := range pairs {
		ids = append(ids, p.QuestionID)
	}
	cur, err := DB.QuestionCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var questions []models.Question
	if err = cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
