package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldInline(t *testing.T) {
	tests := []struct {
		name      string
		ext       string
		size      int64
		threshold int64
		expected  bool
	}{
		{"below threshold", ".png", 10, 100, true},
		{"at threshold", ".png", 100, 100, true},
		{"above threshold", ".png", 101, 100, false},
		{"zero threshold", ".png", 0, 0, false},
		{"negative threshold", ".png", 0, -1, false},
		{"unknown type still inlinable", ".xyz", 1, 100, true},
		{"video never", ".mp4", 1, 1 << 40, false},
		{"uppercase video never", ".MOV", 1, 1 << 40, false},
		{"audio never", ".opus", 1, 1 << 40, false},
		{"ogg never", ".ogg", 1, 1 << 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldInline(tt.ext, tt.size, tt.threshold))
		})
	}
}

func TestIsNeverInline(t *testing.T) {
	for _, ext := range []string{".mp4", ".webm", ".ogv", ".mkv", ".m4v", ".avi", ".mp3", ".wav", ".flac", ".aac", ".m4a", ".oga"} {
		assert.True(t, IsNeverInline(ext), ext)
	}
	for _, ext := range []string{".png", ".svg", ".woff2", ".json", ""} {
		assert.False(t, IsNeverInline(ext), ext)
	}
}
