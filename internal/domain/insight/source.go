package insight

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Source adapts the insight repository to the document domain's
// InsightSource, where a missing insight is simply nil.
type Source struct {
	repo Repository
}

func NewSource(repo Repository) *Source {
	return &Source{repo: repo}
}

func (s *Source) FindByDocumentID(ctx context.Context, documentID primitive.ObjectID) (interface{}, error) {
	insight, err := s.repo.FindByDocumentID(ctx, documentID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *Source) DeleteByDocumentID(ctx context.Context, documentID primitive.ObjectID) error {
	err := s.repo.DeleteByDocumentID(ctx, documentID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
