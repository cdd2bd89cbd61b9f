package bar

import (
	"io"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// New returns a byte progress bar on stderr so it never mixes with
// decoded output on stdout.
func New(length int64, text string) *progressbar.ProgressBar {
	return NewWriter(ansi.NewAnsiStderr(), length, text)
}

func NewWriter(w io.Writer, length int64, text string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		length,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(text),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// Tracker adapts a bar to the OnProgress hook of an adapter.
func Tracker(pb *progressbar.ProgressBar) func(int) {
	return func(n int) {
		pb.Add(n)
	}
}
