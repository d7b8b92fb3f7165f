package bookings

import (
	"context"
	"log"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/models"
	"Backend-Seabreeze/src/services/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MissingSections returns the schema sections not yet referenced by any
// booking section's origSectionId. Strictly additive: existing booking
// sections are never candidates for removal.
func MissingSections(schemaSections, bookingSections []models.Section) []models.Section {
	existing := make(map[primitive.ObjectID]bool, len(bookingSections))
	for _, s := range bookingSections {
		if !s.OrigSectionID.IsZero() {
			existing[s.OrigSectionID] = true
		}
	}

	var missing []models.Section
	for _, s := range schemaSections {
		if !existing[s.ID] {
			missing = append(missing, s)
		}
	}
	return missing
}

// SyncSections reconciles a booking's sections against the current template,
// creating booking clones for any schema section added since the booking
// started. Returns true on success or no-op; failures are logged and reported
// as false without raising, so the caller can proceed on the sections it has.
func SyncSections(ctx context.Context, bookingID primitive.ObjectID) bool {
	sections, err := GetBookingSections(ctx, bookingID)
	if err != nil {
		log.Printf("[sync] load sections failed booking=%s: %v", bookingID.Hex(), err)
		return false
	}
	if len(sections) == 0 {
		// Nothing to anchor the template chain on yet.
		return true
	}

	graph, err := schema.ResolveBookingTemplate(ctx, sections)
	if err != nil {
		log.Printf("[sync] template resolve failed booking=%s: %v", bookingID.Hex(), err)
		return false
	}

	if len(MissingSections(graph.AllSections(), sections)) == 0 {
		return true
	}

	// All-or-nothing: the duplicate check is re-done inside the transaction so
	// a concurrent sync cannot clone the same schema section twice.
	err = DB.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		cur, err := DB.SectionCollection.Find(sc, bson.M{
			"bookingId": bookingID,
			"modelType": models.SectionModelBooking,
		})
		if err != nil {
			return nil, err
		}
		var current []models.Section
		if err = cur.All(sc, &current); err != nil {
			return nil, err
		}

		missing := MissingSections(graph.AllSections(), current)
		if len(missing) == 0 {
			return nil, nil
		}

		docs := make([]interface{}, 0, len(missing))
		for _, s := range missing {
			docs = append(docs, s.CloneForBooking(bookingID))
		}
		_, err = DB.SectionCollection.InsertMany(sc, docs)
		return nil, err
	})
	if err != nil {
		log.Printf("[sync] section sync failed booking=%s: %v", bookingID.Hex(), err)
		return false
	}

	log.Printf("[sync] sections synced booking=%s", bookingID.Hex())
	return true
}
