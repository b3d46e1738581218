package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/skilab/skifft/output"
	"github.com/skilab/skifft/processor"
	"github.com/skilab/skifft/util"
)

// TrendWindow is the number of records the running peak average spans.
const TrendWindow = 16

// SummaryWriter prints the dominant frequency of every record and the
// running average of it over the last TrendWindow records.
type SummaryWriter struct {
	mu     sync.Mutex
	w      io.Writer
	window *util.MovingWindow
}

var _ processor.Output = &SummaryWriter{}

func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w:      w,
		window: util.NewMovingWindow(TrendWindow),
	}
}

func (sw *SummaryWriter) Write(rec output.Record) (string, error) {
	m := rec.Metadata

	idx, mag := rec.Spectrum.Peak()
	if idx < 0 {
		return "", nil
	}

	freq := rec.Spectrum.Freqs[idx]

	sw.mu.Lock()
	defer sw.mu.Unlock()

	mean, std := sw.window.Update(freq)

	_, err := fmt.Fprintf(sw.w, "%s/%s %s #%03d [%d, %d) peak %8.3f Hz  %10.4f  trend %8.3f ± %.3f Hz\n",
		m.AccelID, m.RecordID, m.Axis, m.Segment, m.Start, m.End, freq, mag, mean, std)

	return "stdout", err
}
