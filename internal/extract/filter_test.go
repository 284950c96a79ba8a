package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocalReference(t *testing.T) {
	tests := []struct {
		ref   string
		local bool
	}{
		{"images/hero.png", true},
		{"./images/hero.png", true},
		{"../fonts/deck.woff2", true},
		{"/abs/path.png", true},
		{"hero.png?v=2", true},
		{"http://example.com/a.png", false},
		{"https://example.com/a.png", false},
		{"HTTPS://EXAMPLE.COM/A.PNG", false},
		{"//cdn.example.com/a.png", false},
		{"data:image/png;base64,AAAA", false},
		{"DATA:image/svg+xml,%3Csvg%3E", false},
		{"#gradient", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.local, IsLocalReference(tt.ref))
		})
	}
}

func TestStripQueryAndFragment(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"font.eot?#iefix", "font.eot"},
		{"font.svg#deck", "font.svg"},
		{"img.png?v=1", "img.png"},
		{"img.png", "img.png"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, StripQueryAndFragment(tt.in))
		})
	}
}
