package repository

import (
	"context"
	"fmt"

	"tripcast-service/internal/domain/entity"
	"tripcast-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ForecastCollection is the collection holding forecast records
const ForecastCollection = "forecasts"

// MongoForecastRepository implements ForecastRepository
type MongoForecastRepository struct {
	collection *mongo.Collection
}

// NewMongoForecastRepository creates a new forecast repository
func NewMongoForecastRepository(db *mongo.Database) repository.ForecastRepository {
	collection := db.Collection(ForecastCollection)

	// One forecast per airport and day
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "origin", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(context.Background(), indexModel)

	return &MongoForecastRepository{
		collection: collection,
	}
}

// FindAll returns every stored forecast ordered by origin and date
func (r *MongoForecastRepository) FindAll(ctx context.Context) ([]entity.ForecastRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "origin", Value: 1}, {Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find forecasts: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.ForecastRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode forecasts: %w", err)
	}

	return records, nil
}

// UpsertMany creates or replaces forecasts keyed by origin and date
func (r *MongoForecastRepository) UpsertMany(ctx context.Context, records []entity.ForecastRecord) error {
	if len(records) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"origin": rec.Origin, "date": rec.Date}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	if _, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to upsert forecasts: %w", err)
	}

	return nil
}
