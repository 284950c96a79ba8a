package assets

import (
	"path/filepath"
	"strings"
)

// DefaultMIMEType is used for extensions missing from the table
const DefaultMIMEType = "application/octet-stream"

// mimeTypes maps lowercased extensions to MIME types.
// The table is fixed so manifests do not depend on the host's mime database.
var mimeTypes = map[string]string{
	// images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".bmp":  "image/bmp",
	".apng": "image/apng",

	// fonts
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".eot":   "application/vnd.ms-fontobject",

	// video
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",

	// audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",

	// data
	".json":   "application/json",
	".lottie": "application/zip",
	".vtt":    "text/vtt",
	".css":    "text/css",
}

// MIMEType returns the MIME type for a file path based on its extension
func MIMEType(path string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return DefaultMIMEType
}
