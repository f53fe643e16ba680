// Package filetype decides which uploads are accepted and which carry extractable text.
package filetype

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const OctetStream = "application/octet-stream"

var allowedMimeTypes = map[string]struct{}{
	"text/plain":         {},
	"application/pdf":    {},
	"application/json":   {},
	"text/javascript":    {},
	"text/html":          {},
	"text/css":           {},
	"text/markdown":      {},
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// Extensions accepted regardless of MIME type. They also mark a file as text.
var textExtensions = map[string]struct{}{
	".txt": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".py": {}, ".java": {}, ".cpp": {}, ".c": {}, ".h": {},
	".css": {}, ".html": {}, ".json": {}, ".md": {}, ".xml": {},
}

// Normalize lowercases a MIME type and strips parameters such as charset.
func Normalize(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mt
}

func hasTextExtension(filename string) bool {
	_, ok := textExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// IsAllowed reports whether an upload may be stored.
func IsAllowed(mimeType, filename string) bool {
	if _, ok := allowedMimeTypes[Normalize(mimeType)]; ok {
		return true
	}
	return hasTextExtension(filename)
}

// IsText reports whether the stored bytes should be read back as text content.
func IsText(mimeType, filename string) bool {
	return strings.HasPrefix(Normalize(mimeType), "text/") || hasTextExtension(filename)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(Normalize(mimeType), "image/")
}

// SniffLen is how many leading bytes Detect needs.
const SniffLen = 3072

// Detect returns declared unless it is empty or octet-stream, in which case the type is sniffed from head.
func Detect(declared string, head []byte) string {
	if d := Normalize(declared); d != "" && d != OctetStream {
		return d
	}
	return Normalize(mimetype.Detect(head).String())
}
