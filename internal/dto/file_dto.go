package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type FileResponse struct {
	Id           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	Content      *string   `json:"content"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type FileContentResponse struct {
	Content  string `json:"content"`
	Analyzed bool   `json:"analyzed,omitempty"`
}

// AnalysisResponse keeps the {text} shape clients already parse for chat replies.
type AnalysisResponse struct {
	Text string `json:"text"`
}

// UploadFileRequest is one multipart file part. Size is what the client declared.
type UploadFileRequest struct {
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}
