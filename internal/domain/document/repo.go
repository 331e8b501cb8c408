package document

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("document not found")

// ListOptions narrows and orders a user's document listing. The date
// range applies to reportDate.
type ListOptions struct {
	FileType  string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string // "-reportDate" (default), "reportDate", "-uploadDate", "uploadDate"
	Skip      int64
	Limit     int64
}

// TypeCount is one bucket of the per-type document aggregate.
type TypeCount struct {
	FileType string `bson:"_id" json:"fileType"`
	Count    int64  `bson:"count" json:"count"`
}

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Document, error)
	List(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]*Document, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetAnalyzed(ctx context.Context, id primitive.ObjectID, analyzed bool) error
	CountByUser(ctx context.Context, userID primitive.ObjectID) (total, analyzed int64, err error)
	CountsByType(ctx context.Context, userID primitive.ObjectID) ([]TypeCount, error)
}
