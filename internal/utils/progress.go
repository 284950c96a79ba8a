package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescCopying labels the asset copy progress bar
const DescCopying = "Copying"

// NewProgressBarTo creates a progress bar that renders to w
//
//	bar := utils.NewProgressBarTo(os.Stderr, len(entries), utils.DescCopying)
//	defer bar.Finish()
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)
}

// NewSilentProgressBar creates a progress bar that renders nothing
func NewSilentProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.DefaultSilent(int64(total))
}
