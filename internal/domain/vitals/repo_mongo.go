package vitals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	vitals *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{vitals: db.Collection("vitals")}
}

func (r *MongoRepository) Create(ctx context.Context, e *Entry) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	res, err := r.vitals.InsertOne(ctx, e)
	if err != nil {
		return fmt.Errorf("inserting vitals entry: %w", err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error) {
	var e Entry
	err := r.vitals.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding vitals entry %s: %w", id.Hex(), err)
	}
	return &e, nil
}

func (r *MongoRepository) List(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]*Entry, int64, error) {
	filter := bson.M{"userId": userID}
	if opts.StartDate != nil || opts.EndDate != nil {
		dateRange := bson.M{}
		if opts.StartDate != nil {
			dateRange["$gte"] = *opts.StartDate
		}
		if opts.EndDate != nil {
			dateRange["$lte"] = *opts.EndDate
		}
		filter["date"] = dateRange
	}

	total, err := r.vitals.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting vitals: %w", err)
	}

	sortDir := -1
	if opts.SortBy == "date" {
		sortDir = 1
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "date", Value: sortDir}}).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)

	cur, err := r.vitals.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing vitals: %w", err)
	}
	defer cur.Close(ctx)

	var entries []*Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("decoding vitals: %w", err)
	}
	return entries, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, e *Entry) error {
	e.UpdatedAt = time.Now().UTC()

	res, err := r.vitals.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("updating vitals entry %s: %w", e.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.vitals.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting vitals entry %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	count, err := r.vitals.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("counting vitals: %w", err)
	}
	return count, nil
}
