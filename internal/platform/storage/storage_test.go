package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestKindForContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        ResourceKind
	}{
		{"application/pdf", ResourceRaw},
		{"image/jpeg", ResourceImage},
		{"image/png", ResourceImage},
	}
	for _, tt := range tests {
		if got := KindForContentType(tt.contentType); got != tt.want {
			t.Errorf("KindForContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestObjectKey_ScopedAndSanitized(t *testing.T) {
	key := objectKey(PutInput{
		Kind:     ResourceRaw,
		UserID:   "665f1c2ab8a4d93f1c2ab8a4",
		FileName: "../../etc/passwd lab report.pdf",
	})

	if !strings.HasPrefix(key, "raw/665f1c2ab8a4d93f1c2ab8a4/") {
		t.Errorf("key %q not scoped to kind and user", key)
	}
	if strings.Contains(key, "..") || strings.Contains(key, " ") {
		t.Errorf("key %q contains unsafe characters", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key %q lost its extension", key)
	}
}

func TestObjectKey_Unique(t *testing.T) {
	in := PutInput{Kind: ResourceImage, UserID: "u1", FileName: "scan.png"}
	if objectKey(in) == objectKey(in) {
		t.Error("expected distinct keys for repeated uploads of the same file")
	}
}

func TestMemStore_PutAndDelete(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	obj, err := store.Put(ctx, PutInput{
		Kind:        ResourceImage,
		UserID:      "u1",
		FileName:    "scan.png",
		ContentType: "image/png",
		Body:        strings.NewReader("pixels"),
	})
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if obj.Key == "" || obj.URL == "" {
		t.Fatalf("Put() returned incomplete object: %+v", obj)
	}

	data, ok := store.Get(obj.Key)
	if !ok || string(data) != "pixels" {
		t.Errorf("stored content = %q, ok=%v", data, ok)
	}

	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store after delete, have %d objects", store.Len())
	}
}

func TestMemStore_DeleteMissing(t *testing.T) {
	store := NewMemStore()
	if err := store.Delete(context.Background(), "raw/u1/nope.pdf"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Delete() error = %v, want ErrObjectNotFound", err)
	}
}

func TestMemStore_DeleteEmptyKey(t *testing.T) {
	store := NewMemStore()
	if err := store.Delete(context.Background(), ""); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Delete() error = %v, want ErrMissingKey", err)
	}
}

func TestS3Store_PublicURL(t *testing.T) {
	s := &S3Store{bucket: "healthmate-docs", region: "eu-west-1"}
	got := s.publicURL("raw/u1/a.pdf")
	want := "https://healthmate-docs.s3.eu-west-1.amazonaws.com/raw/u1/a.pdf"
	if got != want {
		t.Errorf("publicURL() = %q, want %q", got, want)
	}

	s.public = "https://cdn.healthmate.app"
	if got := s.publicURL("raw/u1/a.pdf"); got != "https://cdn.healthmate.app/raw/u1/a.pdf" {
		t.Errorf("publicURL() with base = %q", got)
	}
}
