package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmate/healthmate/internal/platform/respond"
	"github.com/healthmate/healthmate/internal/platform/storage"
)

// InsightSource lets the document service read and cascade-delete the
// analysis attached to a document without importing the insight domain.
type InsightSource interface {
	FindByDocumentID(ctx context.Context, documentID primitive.ObjectID) (interface{}, error)
	DeleteByDocumentID(ctx context.Context, documentID primitive.ObjectID) error
}

type Service struct {
	documents Repository
	store     storage.Store
	insights  InsightSource
	logger    zerolog.Logger

	maxFileSize  int64
	strictDelete bool
}

type ServiceConfig struct {
	MaxFileSize int64
	// StrictDelete aborts a document delete when the stored object
	// cannot be removed. When false the orphaned object is logged and
	// the delete proceeds.
	StrictDelete bool
}

func NewService(documents Repository, store storage.Store, insights InsightSource, logger zerolog.Logger, cfg ServiceConfig) *Service {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 10 << 20
	}
	return &Service{
		documents:    documents,
		store:        store,
		insights:     insights,
		logger:       logger,
		maxFileSize:  cfg.MaxFileSize,
		strictDelete: cfg.StrictDelete,
	}
}

type UploadInput struct {
	FileName   string
	MimeType   string
	Size       int64
	FileType   string
	ReportDate string
	Content    io.Reader
}

// Upload validates and stores a medical document, then records its
// metadata.
func (s *Service) Upload(ctx context.Context, userID primitive.ObjectID, in UploadInput) (*Document, error) {
	if in.Content == nil {
		return nil, respond.Validation("please upload a file")
	}
	if in.FileType == "" || in.ReportDate == "" {
		return nil, respond.Validation("please provide file type and report date")
	}
	if !ValidFileTypes[in.FileType] {
		return nil, respond.Validation("invalid file type")
	}
	if !AllowedMimeTypes[in.MimeType] {
		return nil, respond.Validation("invalid file type. only PDF, JPG, JPEG, and PNG are allowed")
	}
	if in.Size > s.maxFileSize {
		return nil, respond.Validation(fmt.Sprintf("file too large. maximum size is %dMB", s.maxFileSize>>20))
	}

	reportDate, err := parseDate(in.ReportDate)
	if err != nil {
		return nil, respond.Validation("please provide a valid report date")
	}

	kind := storage.KindForContentType(in.MimeType)
	obj, err := s.store.Put(ctx, storage.PutInput{
		Kind:        kind,
		UserID:      userID.Hex(),
		FileName:    in.FileName,
		ContentType: in.MimeType,
		Body:        in.Content,
	})
	if err != nil {
		return nil, respond.Upstream("error uploading file", err)
	}

	doc := &Document{
		UserID:     userID,
		FileName:   in.FileName,
		FileURL:    obj.URL,
		FileType:   in.FileType,
		MimeType:   in.MimeType,
		FileSize:   in.Size,
		ReportDate: reportDate,
		StorageKey: obj.Key,
	}
	if kind == storage.ResourceImage {
		doc.Thumbnail = obj.URL
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		// Metadata insert failed after the object landed in storage.
		// Remove the object so it cannot leak.
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", obj.Key).Msg("orphaned object after failed metadata insert")
		}
		return nil, err
	}
	return doc, nil
}

// List returns a page of the user's documents.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]*Document, int64, error) {
	if opts.FileType != "" && !ValidFileTypes[opts.FileType] {
		return nil, 0, respond.Validation("invalid file type")
	}
	return s.documents.List(ctx, userID, opts)
}

// Get returns one document with its analysis, if any, enforcing
// ownership.
func (s *Service) Get(ctx context.Context, userID, id primitive.ObjectID) (*Document, interface{}, error) {
	doc, err := s.getOwned(ctx, userID, id, "not authorized to access this file")
	if err != nil {
		return nil, nil, err
	}

	insights, err := s.insights.FindByDocumentID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return doc, insights, nil
}

// Delete removes the stored object, the attached analysis and finally
// the metadata record, in that order.
func (s *Service) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	doc, err := s.getOwned(ctx, userID, id, "not authorized to delete this file")
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.StorageKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		if s.strictDelete {
			return respond.Upstream("error deleting file", err)
		}
		s.logger.Warn().Err(err).Str("key", doc.StorageKey).Msg("object delete failed, continuing")
	}

	if err := s.insights.DeleteByDocumentID(ctx, id); err != nil {
		return err
	}
	return s.documents.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID, id primitive.ObjectID, forbiddenMsg string) (*Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, respond.NotFound("file not found")
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, respond.Forbidden(forbiddenMsg)
	}
	return doc, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
