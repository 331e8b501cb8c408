package document

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
	documents *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{documents: db.Collection("documents")}
}

func (r *MongoRepository) Create(ctx context.Context, d *Document) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.UploadDate.IsZero() {
		d.UploadDate = now
	}

	res, err := r.documents.InsertOne(ctx, d)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Document, error) {
	var d Document
	err := r.documents.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding document %s: %w", id.Hex(), err)
	}
	return &d, nil
}

func (r *MongoRepository) List(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]*Document, int64, error) {
	filter := bson.M{"userId": userID}
	if opts.FileType != "" {
		filter["fileType"] = opts.FileType
	}
	if opts.StartDate != nil || opts.EndDate != nil {
		dateRange := bson.M{}
		if opts.StartDate != nil {
			dateRange["$gte"] = *opts.StartDate
		}
		if opts.EndDate != nil {
			dateRange["$lte"] = *opts.EndDate
		}
		filter["reportDate"] = dateRange
	}

	total, err := r.documents.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("counting documents: %w", err)
	}

	findOpts := options.Find().
		SetSort(sortSpec(opts.SortBy)).
		SetSkip(opts.Skip).
		SetLimit(opts.Limit)

	cur, err := r.documents.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("listing documents: %w", err)
	}
	defer cur.Close(ctx)

	var docs []*Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decoding documents: %w", err)
	}
	return docs, total, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.documents.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetAnalyzed(ctx context.Context, id primitive.ObjectID, analyzed bool) error {
	update := bson.M{"$set": bson.M{"isAnalyzed": analyzed, "updatedAt": time.Now().UTC()}}
	res, err := r.documents.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("marking document %s analyzed=%t: %w", id.Hex(), analyzed, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, int64, error) {
	total, err := r.documents.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, 0, fmt.Errorf("counting documents: %w", err)
	}
	analyzed, err := r.documents.CountDocuments(ctx, bson.M{"userId": userID, "isAnalyzed": true})
	if err != nil {
		return 0, 0, fmt.Errorf("counting analyzed documents: %w", err)
	}
	return total, analyzed, nil
}

func (r *MongoRepository) CountsByType(ctx context.Context, userID primitive.ObjectID) ([]TypeCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$fileType", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.documents.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating document types: %w", err)
	}
	defer cur.Close(ctx)

	var counts []TypeCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decoding type counts: %w", err)
	}
	return counts, nil
}

func sortSpec(sortBy string) bson.D {
	switch sortBy {
	case "reportDate":
		return bson.D{{Key: "reportDate", Value: 1}}
	case "uploadDate":
		return bson.D{{Key: "uploadDate", Value: 1}}
	case "-uploadDate":
		return bson.D{{Key: "uploadDate", Value: -1}}
	default:
		return bson.D{{Key: "reportDate", Value: -1}}
	}
}
