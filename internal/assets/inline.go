package assets

import "strings"

// neverInline holds video and audio extensions. These are streamed by the
// browser and are never embedded, whatever their size.
var neverInline = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".ogv":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".m4v":  true,
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".aac":  true,
	".m4a":  true,
	".oga":  true,
	".opus": true,
}

// ShouldInline decides whether an asset is embedded as a data URI.
// ext is the file extension including the dot; a threshold of 0 disables inlining.
func ShouldInline(ext string, size, threshold int64) bool {
	if IsNeverInline(ext) {
		return false
	}
	return threshold > 0 && size <= threshold
}

// IsNeverInline reports whether ext belongs to the never-inline set
func IsNeverInline(ext string) bool {
	return neverInline[strings.ToLower(ext)]
}
