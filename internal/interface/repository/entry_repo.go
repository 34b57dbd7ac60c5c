// internal/interface/repository/entry_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEntryRepository implements the EntryRepository interface
type MongoEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoEntryRepository creates a new MongoDB entry repository
func NewMongoEntryRepository(db *mongo.Database) repository.EntryRepository {
	collection := db.Collection("entries")

	// Create indexes for better performance
	ctx := context.Background()

	registrationIndex := mongo.IndexModel{
		Keys:    bson.M{"registration": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on createdAt for listing in journal order
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		registrationIndex,
		createdAtIndex,
	})

	return &MongoEntryRepository{
		collection: collection,
	}
}

// FindByRegistration finds an aircraft record by registration
func (r *MongoEntryRepository) FindByRegistration(ctx context.Context, registration string) (*entity.AircraftRecord, error) {
	var record entity.AircraftRecord
	err := r.collection.FindOne(ctx, bson.M{"registration": registration}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find record: %w", err)
	}
	return &record, nil
}

// FindAll returns all aircraft records, oldest first
func (r *MongoEntryRepository) FindAll(ctx context.Context) ([]*entity.AircraftRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*entity.AircraftRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	return records, nil
}

// Insert saves a new aircraft record
func (r *MongoEntryRepository) Insert(ctx context.Context, record *entity.AircraftRecord) error {
	now := time.Now()
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Sightings == nil {
		record.Sightings = []entity.Sighting{}
	}
	if record.FlightHistory == nil {
		record.FlightHistory = []entity.HistoryEntry{}
	}

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// AddSighting appends a sighting to an existing record
func (r *MongoEntryRepository) AddSighting(ctx context.Context, registration string, sighting entity.Sighting) (*entity.AircraftRecord, error) {
	update := bson.M{
		"$push": bson.M{"sightings": sighting},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	return r.findOneAndUpdate(ctx, registration, update)
}

// UpdateSightings replaces the sightings list on an existing record
func (r *MongoEntryRepository) UpdateSightings(ctx context.Context, registration string, sightings []entity.Sighting) (*entity.AircraftRecord, error) {
	if sightings == nil {
		sightings = []entity.Sighting{}
	}

	update := bson.M{
		"$set": bson.M{
			"sightings": sightings,
			"updatedAt": time.Now(),
		},
	}

	return r.findOneAndUpdate(ctx, registration, update)
}

// Delete removes a record by registration
func (r *MongoEntryRepository) Delete(ctx context.Context, registration string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"registration": registration})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrRecordNotFound
	}
	return nil
}

// UpdateFlightHistory replaces the cached history and check timestamp in one
// update. The filter matches the lastFlightHistoryCheck value the caller read
// at the start of its cycle, so a concurrent refresh makes the write a no-op
// and the caller gets ErrConflict instead of silently losing data.
func (r *MongoEntryRepository) UpdateFlightHistory(ctx context.Context, registration string, history []entity.HistoryEntry, checkedAt, expectedCheckedAt time.Time) error {
	if history == nil {
		history = []entity.HistoryEntry{}
	}

	filter := bson.M{
		"registration":           registration,
		"lastFlightHistoryCheck": expectedCheckedAt,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{
			"flightHistory":          history,
			"lastFlightHistoryCheck": checkedAt,
			"updatedAt":              time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update flight history: %w", err)
	}

	if result.MatchedCount == 0 {
		// Distinguish a deleted record from a concurrent refresh
		if _, err := r.FindByRegistration(ctx, registration); err != nil {
			return err
		}
		return entity.ErrConflict
	}

	return nil
}

func (r *MongoEntryRepository) findOneAndUpdate(ctx context.Context, registration string, update bson.M) (*entity.AircraftRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var record entity.AircraftRecord
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"registration": registration}, update, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return &record, nil
}
