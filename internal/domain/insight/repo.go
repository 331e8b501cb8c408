package insight

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("insight not found")
	ErrDuplicate = errors.New("document already has an insight")
)

type Repository interface {
	Create(ctx context.Context, i *Insight) error
	FindByDocumentID(ctx context.Context, documentID primitive.ObjectID) (*Insight, error)
	DeleteByDocumentID(ctx context.Context, documentID primitive.ObjectID) error
}
