// Package db owns the MongoDB client lifecycle: connection bootstrap with
// bounded retries, index management, and the health probe handler.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect establishes a MongoDB connection, retrying with exponential
// backoff (2s, 4s, ...) up to attempts times before giving up with an
// error. The caller decides whether a failed bootstrap is fatal.
func Connect(ctx context.Context, uri string, attempts int, logger zerolog.Logger) (*mongo.Client, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := tryConnect(ctx, uri)
		if err == nil {
			return client, nil
		}
		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Msg("mongodb connect failed")

		if attempt == attempts {
			break
		}
		delay := time.Duration(1<<attempt) * time.Second
		logger.Info().Dur("retry_in", delay).Msg("retrying mongodb connection")
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("mongodb connect after %d attempt(s): %w", attempts, lastErr)
}

func tryConnect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout).
		SetConnectTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}
