// Package storage provides object storage for uploaded medical documents.
// It defines the Store interface, an S3 implementation, and an in-memory
// implementation suitable for testing and development.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrMissingKey     = errors.New("object key is required")
)

// ResourceKind selects the storage prefix for an object. PDFs are stored
// as raw documents while scans and photos are stored as images, which lets
// a CDN apply image transformations only where they make sense.
type ResourceKind string

const (
	ResourceImage ResourceKind = "images"
	ResourceRaw   ResourceKind = "raw"
)

// KindForContentType maps a MIME type to its resource kind.
func KindForContentType(contentType string) ResourceKind {
	if contentType == "application/pdf" {
		return ResourceRaw
	}
	return ResourceImage
}

// PutInput describes an object to store.
type PutInput struct {
	Kind        ResourceKind
	UserID      string
	FileName    string
	ContentType string
	Body        io.Reader
}

// Object identifies a stored object and its public location.
type Object struct {
	Key string
	URL string
}

// Store is the contract for object storage backends.
type Store interface {
	Put(ctx context.Context, in PutInput) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// objectKey builds a collision-free key scoped to the owning user, e.g.
// "raw/665f.../8d4c...-report.pdf".
func objectKey(in PutInput) string {
	name := sanitizeFileName(in.FileName)
	return fmt.Sprintf("%s/%s/%s-%s", in.Kind, in.UserID, uuid.NewString(), name)
}

func sanitizeFileName(name string) string {
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
