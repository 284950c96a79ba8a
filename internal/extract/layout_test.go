package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLayout_Attributes(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		expected []string
	}{
		{
			name:     "img src",
			markup:   `<img src="logo.png" alt="">`,
			expected: []string{"logo.png"},
		},
		{
			name:     "single quoted and unquoted attributes",
			markup:   `<img src='a.png'><img src=b.png>`,
			expected: []string{"a.png", "b.png"},
		},
		{
			name:     "video src then poster then srcset",
			markup:   `<video src="clip.mp4" poster="poster.jpg"><source src="clip.webm"></video>`,
			expected: []string{"clip.mp4", "poster.jpg", "clip.webm"},
		},
		{
			name:     "srcset keeps urls only",
			markup:   `<img src="a.png" srcset="a.png 1x, a@2x.png 2x,  a-wide.png   800w">`,
			expected: []string{"a.png", "a@2x.png", "a-wide.png"},
		},
		{
			name:     "picture source srcset",
			markup:   `<picture><source srcset="hero.webp" type="image/webp"><img src="hero.jpg"></picture>`,
			expected: []string{"hero.webp", "hero.jpg"},
		},
		{
			name:     "audio and track",
			markup:   `<audio src="ding.mp3"></audio><video><track src="subs.vtt"></video>`,
			expected: []string{"ding.mp3", "subs.vtt"},
		},
		{
			name:     "remote and data excluded",
			markup:   `<img src="https://cdn.example.com/a.png"><img src="data:image/gif;base64,R0lGOD"><img src="//cdn/b.png">`,
			expected: []string{},
		},
		{
			name:     "scripts and frames are not assets",
			markup:   `<script src="app.js"></script><iframe src="frame.html"></iframe>`,
			expected: []string{},
		},
		{
			name:     "image inputs only",
			markup:   `<input type="image" src="go.png"><input type="text" src="no.png">`,
			expected: []string{"go.png"},
		},
		{
			name:     "poster on non video ignored",
			markup:   `<div poster="x.png"></div>`,
			expected: []string{},
		},
		{
			name:     "deduplicated",
			markup:   `<img src="a.png"><img src="a.png">`,
			expected: []string{"a.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, err := ScanLayout(tt.markup)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, refs.Attributes)
		})
	}
}

func TestScanLayout_Styles(t *testing.T) {
	markup := `<html><head><style>
.slide { background: url("bg/slide.jpg"); }
.logo { background: url(https://cdn.example.com/logo.png); }
</style></head>
<body><div style="background-image: url('bg/title.png')"><img src="bg/slide.jpg"></div></body></html>`

	refs, err := ScanLayout(markup)
	require.NoError(t, err)

	assert.Equal(t, []string{"bg/slide.jpg"}, refs.Attributes)
	assert.Equal(t, []string{"bg/slide.jpg", "bg/title.png"}, refs.Styles)
}

func TestParseSrcset(t *testing.T) {
	tests := []struct {
		srcset   string
		expected []string
	}{
		{"a.png", []string{"a.png"}},
		{"a.png 1x, b.png 2x", []string{"a.png", "b.png"}},
		{"a.png 480w,\n b.png 800w", []string{"a.png", "b.png"}},
		{" , a.png", []string{"a.png"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.srcset, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSrcset(tt.srcset))
		})
	}
}
