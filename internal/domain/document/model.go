package document

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document maps to the documents collection. StorageKey locates the
// uploaded object in the blob store.
type Document struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	FileName   string             `bson:"fileName" json:"fileName"`
	FileURL    string             `bson:"fileUrl" json:"fileUrl"`
	FileType   string             `bson:"fileType" json:"fileType"`
	MimeType   string             `bson:"mimeType" json:"mimeType"`
	FileSize   int64              `bson:"fileSize" json:"fileSize"`
	UploadDate time.Time          `bson:"uploadDate" json:"uploadDate"`
	ReportDate time.Time          `bson:"reportDate" json:"reportDate"`
	Thumbnail  string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	StorageKey string             `bson:"storageKey" json:"-"`
	IsAnalyzed bool               `bson:"isAnalyzed" json:"isAnalyzed"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidFileTypes are the accepted document categories.
var ValidFileTypes = map[string]bool{
	"lab_report":   true,
	"prescription": true,
	"xray":         true,
	"ultrasound":   true,
	"other":        true,
}

// AllowedMimeTypes are the upload formats the API accepts.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

// FormatFileSize renders a byte count for display, e.g. "2.4 MB".
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}

// UploadedView is the trimmed representation returned right after an
// upload, with a human-readable size.
type UploadedView struct {
	ID         primitive.ObjectID `json:"id"`
	FileName   string             `json:"fileName"`
	FileURL    string             `json:"fileUrl"`
	FileType   string             `json:"fileType"`
	FileSize   string             `json:"fileSize"`
	ReportDate time.Time          `json:"reportDate"`
	UploadDate time.Time          `json:"uploadDate"`
	Thumbnail  string             `json:"thumbnail,omitempty"`
}

func (d *Document) UploadedView() UploadedView {
	return UploadedView{
		ID:         d.ID,
		FileName:   d.FileName,
		FileURL:    d.FileURL,
		FileType:   d.FileType,
		FileSize:   FormatFileSize(d.FileSize),
		ReportDate: d.ReportDate,
		UploadDate: d.UploadDate,
		Thumbnail:  d.Thumbnail,
	}
}
