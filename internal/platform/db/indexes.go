package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the registries rely on. The unique index
// on insights.documentId is load-bearing: it is what turns a concurrent
// duplicate analysis into a duplicate-key error instead of a second insight.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	users := database.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	documents := database.Collection("documents")
	if _, err := documents.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "reportDate", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "fileType", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("documents indexes: %w", err)
	}

	vitals := database.Collection("vitals")
	if _, err := vitals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	}); err != nil {
		return fmt.Errorf("vitals index: %w", err)
	}

	insights := database.Collection("insights")
	if _, err := insights.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "documentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("insights documentId index: %w", err)
	}

	return nil
}
