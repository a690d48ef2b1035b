// Package ioprogress shows progress of an estimation run in a terminal.
package ioprogress

import (
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

// Bar implements inbreeding.Observer with a progress bar.
type Bar struct {
	bar *pb.ProgressBar
}

// New starts a progress bar for total individuals writing to w.
func New(total int, prefix string, w io.Writer) *Bar {
	bar := pb.Full.New(total)
	bar.SetWriter(w)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	bar.Start()
	return &Bar{bar: bar}
}

// Observe implements inbreeding.Observer.
func (b *Bar) Observe(_ *inbreeding.Result, _ time.Duration) {
	b.bar.Increment()
}

// Current returns the number of observed individuals.
func (b *Bar) Current() int64 {
	return b.bar.Current()
}

// Finish stops the bar.
func (b *Bar) Finish() {
	b.bar.Finish()
}
