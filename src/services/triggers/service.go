package triggers

import (
	"context"
	"errors"
	"time"

	DB "Backend-Seabreeze/src/database"
	"Backend-Seabreeze/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTriggerNotFound = errors.New("trigger not found")

// LoadEnabled returns the enabled rules, optionally limited to those with a
// static recipient (the funder/internal routes configured by admins).
func LoadEnabled(ctx context.Context, staticRecipientOnly bool) ([]models.Trigger, error) {
	filter := bson.M{"enabled": true}
	if staticRecipientOnly {
		filter["recipient"] = bson.M{"$nin": bson.A{nil, ""}}
	}

	cur, err := DB.TriggerCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var rules []models.Trigger
	if err = cur.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// GetTriggerByID loads one rule.
func GetTriggerByID(ctx context.Context, id primitive.ObjectID) (*models.Trigger, error) {
	var trigger models.Trigger
	err := DB.TriggerCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&trigger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTriggerNotFound
		}
		return nil, err
	}
	return &trigger, nil
}

// CreateTrigger inserts a new rule.
func CreateTrigger(ctx context.Context, trigger *models.Trigger) error {
	trigger.ID = primitive.NewObjectID()
	trigger.CreatedAt = time.Now()
	_, err := DB.TriggerCollection.InsertOne(ctx, trigger)
	return err
}

// GetTriggers lists rules with the standard pagination envelope.
func GetTriggers(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := DB.TriggerCollection.CountDocuments(ctx, filter)
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

	cur, err := DB.TriggerCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rules []models.Trigger
	if err = cur.All(ctx, &rules); err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(rules, total, params), nil
}

// SetEnabled flips a rule on or off.
func SetEnabled(ctx context.Context, id primitive.ObjectID, enabled bool) error {
	res, err := DB.TriggerCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"enabled": enabled}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTriggerNotFound
	}
	return nil
}

// IncrementSent bumps a rule's usage counter after a successful dispatch. The
// only mutation the engine ever performs on trigger rows.
func IncrementSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := DB.TriggerCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"sentCount": 1}})
	return err
}
