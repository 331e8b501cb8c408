package vitals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("vitals entry not found")

// ListOptions narrows and orders a user's vitals listing.
type ListOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string // "-date" (default) or "date"
	Skip      int64
	Limit     int64
}

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Entry, error)
	List(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]*Entry, int64, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
