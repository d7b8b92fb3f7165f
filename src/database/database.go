package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DBName = "SeabreezeDB"

var (
	client     *mongo.Client
	once       sync.Once // guard against running ConnectMongoDB() twice
	connectErr error

	TemplateCollection           *mongo.Collection
	PageCollection               *mongo.Collection
	SectionCollection            *mongo.Collection
	QuestionCollection           *mongo.Collection
	QuestionDependencyCollection *mongo.Collection
	QaPairCollection             *mongo.Collection
	BookingCollection            *mongo.Collection
	RoomCollection               *mongo.Collection
	BookingEquipmentCollection   *mongo.Collection
	TriggerCollection            *mongo.Collection
)

// ConnectMongoDB connects to MongoDB exactly once and wires the collections.
func ConnectMongoDB() error {

	// Load environment variables from .env if present.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		log.Println("✅ MongoDB connected successfully")

		db := client.Database(DBName)
		TemplateCollection = db.Collection("templates")
		PageCollection = db.Collection("pages")
		SectionCollection = db.Collection("sections")
		QuestionCollection = db.Collection("questions")
		QuestionDependencyCollection = db.Collection("question-dependencies")
		QaPairCollection = db.Collection("qa-pairs")
		BookingCollection = db.Collection("bookings")
		RoomCollection = db.Collection("rooms")
		BookingEquipmentCollection = db.Collection("booking-equipments")
		TriggerCollection = db.Collection("triggers")
	})

	return connectErr
}

// Client exposes the raw client for session/transaction work.
func Client() *mongo.Client {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client
}

// GetCollection fetches an arbitrary collection.
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}

// WithTransaction runs fn inside a single Mongo transaction.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) error {
	session, err := Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, fn)
	return err
}
