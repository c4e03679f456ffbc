// Package meta extracts per-item metadata from media files: titles,
// sidecar descriptions, and MIME types for enclosures.
package meta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"

	"github.com/amsehili/genrss/internal/debug"
)

// Title returns the item title for a media file. With useMetadata, the
// embedded tag title (ID3, MP4, FLAC, OGG) is preferred; the base name
// without extension is the fallback in every other case.
func Title(path string, useMetadata bool) string {
	if useMetadata {
		if title, ok := tagTitle(path); ok {
			return title
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func tagTitle(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		debug.Log("Metadata: no readable tags in %s: %v", path, err)
		return "", false
	}
	title := strings.TrimSpace(m.Title())
	return title, title != ""
}

// Description returns the contents of the sidecar text file that shares
// the media file's base name (<name>.txt), trimmed. The second result is
// false when no sidecar exists.
func Description(path string) (string, bool) {
	sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// mediaTypes maps media extensions to MIME types for files whose content
// cannot be sniffed (empty or truncated media). Mirrors the extension
// table the original relied on.
var mediaTypes = map[string]string{
	".3gp":  "video/3gpp",
	".aac":  "audio/aac",
	".avi":  "video/x-msvideo",
	".bmp":  "image/bmp",
	".flac": "audio/flac",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".m4a":  "audio/mp4",
	".m4b":  "audio/mp4",
	".m4v":  "video/mp4",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp2":  "audio/mpeg",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".ogv":  "video/ogg",
	".opus": "audio/ogg",
	".png":  "image/png",
	".wav":  "audio/x-wav",
	".webm": "video/webm",
	".webp": "image/webp",
	".wma":  "audio/x-ms-wma",
	".wmv":  "video/x-ms-wmv",
}

// MIMEType resolves the MIME type of a file. Content sniffing runs
// first; generic answers (octet-stream, plain text) fall back to the
// extension table so that empty or placeholder media files keep their
// expected type. Returns "" when neither source knows the file.
func MIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	byExt := mediaTypes[ext]

	detected, err := mimetype.DetectFile(path)
	if err == nil {
		sniffed := detected.String()
		// Strip parameters such as "; charset=utf-8"
		if i := strings.Index(sniffed, ";"); i >= 0 {
			sniffed = sniffed[:i]
		}
		if !isGeneric(sniffed) {
			return sniffed
		}
	}

	return byExt
}

func isGeneric(mimeType string) bool {
	switch mimeType {
	case "", "application/octet-stream", "text/plain":
		return true
	}
	return false
}

// IsEnclosure reports whether a MIME type should produce an RSS
// enclosure: audio, video, and image files qualify.
func IsEnclosure(mimeType string) bool {
	return strings.HasPrefix(mimeType, "audio/") ||
		strings.HasPrefix(mimeType, "video/") ||
		strings.HasPrefix(mimeType, "image/")
}
