package relay

import "strings"

// allowedTypes is matched exactly; MIME types are not case-folded.
var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
	"audio/mpeg":      true,
	"audio/wav":       true,
	"text/plain":      true,
	"application/pdf": true,
}

// IsAllowedType reports whether files of contentType may be uploaded.
func IsAllowedType(contentType string) bool {
	return allowedTypes[contentType]
}

// IsPreviewable reports whether a browser can render contentType inline.
func IsPreviewable(contentType string) bool {
	if contentType == "application/pdf" {
		return true
	}
	top, _, ok := strings.Cut(contentType, "/")
	if !ok {
		return false
	}
	switch top {
	case "image", "video", "audio", "text":
		return true
	}
	return false
}
