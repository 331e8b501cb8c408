package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository struct {
	insights *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{insights: db.Collection("insights")}
}

func (r *MongoRepository) Create(ctx context.Context, i *Insight) error {
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now
	if i.AnalysisDate.IsZero() {
		i.AnalysisDate = now
	}

	res, err := r.insights.InsertOne(ctx, i)
	if err != nil {
		// The unique documentId index turns concurrent analyses of the
		// same document into a duplicate key error here.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting insight: %w", err)
	}
	i.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoRepository) FindByDocumentID(ctx context.Context, documentID primitive.ObjectID) (*Insight, error) {
	var i Insight
	err := r.insights.FindOne(ctx, bson.M{"documentId": documentID}).Decode(&i)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding insight for document %s: %w", documentID.Hex(), err)
	}
	return &i, nil
}

func (r *MongoRepository) DeleteByDocumentID(ctx context.Context, documentID primitive.ObjectID) error {
	res, err := r.insights.DeleteOne(ctx, bson.M{"documentId": documentID})
	if err != nil {
		return fmt.Errorf("deleting insight for document %s: %w", documentID.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
