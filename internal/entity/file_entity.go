package entity

import (
	"time"

	"github.com/google/uuid"
)

// File describes an upload. Filename is the generated storage name inside the upload
// directory; OriginalName is what the client sent.
type File struct {
	Id           uuid.UUID
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Content      *string // extracted text, nil for binary uploads
	UploadedAt   time.Time
}

func (f *File) HasContent() bool {
	return f.Content != nil && *f.Content != ""
}
