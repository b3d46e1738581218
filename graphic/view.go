package graphic

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/skilab/skifft/output"
)

// Colors
const (
	StyleDefault     = termbox.ColorWhite
	StyleDefaultBack = termbox.ColorDefault
	StyleTitle       = termbox.ColorCyan
)

// Viewer shows a spectrum record as bars in the terminal.
type Viewer struct {
	rec output.Record

	barWidth   int
	spaceWidth int
	db         bool
}

// NewViewer returns a viewer for rec, in dB when the record asks for it.
func NewViewer(rec output.Record) *Viewer {
	return &Viewer{
		rec:        rec,
		barWidth:   2,
		spaceWidth: 1,
		db:         rec.Metadata.DBScaled,
	}
}

// SetWidths sets the bar and space width in cells.
func (v *Viewer) SetWidths(bar, space int) {
	if bar < 1 {
		bar = 1
	}
	if space < 0 {
		space = 0
	}
	v.barWidth, v.spaceWidth = bar, space
}

// Run draws until q, Esc or Ctrl-C is pressed, or ctx is done.
//
// Arrow keys change the bar and space widths, d toggles dB.
func (v *Viewer) Run(ctx context.Context) error {
	closeScreen, err := openScreen()
	if err != nil {
		return err
	}
	defer closeScreen()

	done := make(chan struct{})
	defer close(done)

	// the poller stays blocked in PollEvent after we return, which is fine
	// for a process about to exit
	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		if err := v.draw(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev.Type {
			case termbox.EventError:
				return errors.Wrap(ev.Err, "terminal event")

			case termbox.EventKey:
				switch {
				case ev.Ch == 'q' || ev.Ch == 'Q', ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC:
					return nil

				case ev.Ch == 'd' || ev.Ch == 'D':
					v.db = !v.db

				case ev.Key == termbox.KeyArrowUp:
					v.SetWidths(v.barWidth+1, v.spaceWidth)

				case ev.Key == termbox.KeyArrowDown:
					v.SetWidths(v.barWidth-1, v.spaceWidth)

				case ev.Key == termbox.KeyArrowRight:
					v.SetWidths(v.barWidth, v.spaceWidth+1)

				case ev.Key == termbox.KeyArrowLeft:
					v.SetWidths(v.barWidth, v.spaceWidth-1)
				}
			}
		}
	}
}

func (v *Viewer) title() string {
	m := v.rec.Metadata
	scale := "linear"
	if v.db {
		scale = "dB"
	}

	spec := v.rec.Spectrum
	top := 0.0
	if spec.Len() > 0 {
		top = spec.Freqs[spec.Len()-1]
	}

	return fmt.Sprintf(" %s %s/%s axis %s segment %d [%d, %d)  0-%.1f Hz  %s ",
		m.Strategy, m.AccelID, m.RecordID, m.Axis, m.Segment, m.Start, m.End, top, scale)
}

func (v *Viewer) draw() error {
	if err := termbox.Clear(StyleDefaultBack, StyleDefaultBack); err != nil {
		return err
	}

	width, height := termbox.Size()

	for col, r := range []rune(v.title()) {
		if col >= width {
			break
		}
		termbox.SetCell(col, 0, r, StyleTitle, StyleDefaultBack)
	}

	rows := height - 1
	binWidth := v.barWidth + v.spaceWidth
	count := (width + v.spaceWidth) / binWidth

	bars := Bars(v.rec.Spectrum, count, v.db)

	xCol := (width - (len(bars)*binWidth - v.spaceWidth)) / 2
	if xCol < 0 {
		xCol = 0
	}

	for _, bar := range bars {
		full, top := stopAndTop(bar*float64(rows), rows)

		for c := xCol; c < xCol+v.barWidth && c < width; c++ {
			row := height - 1
			for n := 0; n < full; n++ {
				termbox.SetCell(c, row, BarRune, StyleDefault, StyleDefaultBack)
				row--
			}

			if full < rows && top != SpaceRune {
				termbox.SetCell(c, row, top, StyleDefault, StyleDefaultBack)
			}
		}

		xCol += binWidth
	}

	return termbox.Flush()
}

// clearsTerminfo reports whether TERMINFO has to be unset for termbox to
// start under term. Some tmux TERM values combined with TERMINFO break it.
func clearsTerminfo(term string) bool {
	return strings.HasPrefix(term, "tmux")
}

// openScreen starts termbox and returns the function that stops it. A
// TERMINFO cleared for termbox is put back when the screen closes.
func openScreen() (func(), error) {
	prev, set := os.LookupEnv("TERMINFO")
	cleared := set && clearsTerminfo(os.Getenv("TERM"))

	if cleared {
		if err := os.Unsetenv("TERMINFO"); err != nil {
			return nil, errors.Wrap(err, "failed to prepare terminal")
		}
	}

	restore := func() {
		if cleared {
			os.Setenv("TERMINFO", prev)
		}
	}

	if err := termbox.Init(); err != nil {
		restore()
		return nil, errors.Wrap(err, "failed to open terminal")
	}

	return func() {
		termbox.Close()
		restore()
	}, nil
}
