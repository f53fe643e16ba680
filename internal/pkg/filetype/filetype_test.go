package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		filename string
		want     bool
	}{
		{"plain text", "text/plain", "notes", true},
		{"charset parameter", "text/plain; charset=utf-8", "notes", true},
		{"png", "image/png", "logo.png", true},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "cv.docx", true},
		{"extension fallback", "application/octet-stream", "main.go.ts", true},
		{"uppercase extension", "application/x-unknown", "README.MD", true},
		{"zip rejected", "application/zip", "bundle.zip", false},
		{"exe rejected", "application/octet-stream", "setup.exe", false},
		{"webp rejected", "image/webp", "photo.webp", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(tt.mimeType, tt.filename))
		})
	}
}

func TestIsText(t *testing.T) {
	assert.True(t, IsText("text/csv", "data.csv"))
	assert.True(t, IsText("application/octet-stream", "script.py"))
	assert.True(t, IsText("application/json", "data.json"))
	assert.False(t, IsText("application/json", "data"))
	assert.False(t, IsText("application/pdf", "paper.pdf"))
	assert.False(t, IsText("image/png", "logo.png"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/gif"))
	assert.True(t, IsImage("IMAGE/JPEG"))
	assert.False(t, IsImage("application/pdf"))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, "text/markdown", Detect("text/markdown", []byte{0x89, 'P', 'N', 'G'}), "declared type wins")

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", Detect("application/octet-stream", png))

	assert.Equal(t, "text/plain", Detect("", []byte("just some words\n")))
}
