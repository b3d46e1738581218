package graphic

import (
	"math"

	"github.com/skilab/skifft/dsp"
)

const (
	// BarRune is the block we use for bars
	BarRune rune = '█'

	// SpaceRune is the block we use for space
	SpaceRune rune = ' '

	// NumRunes number of runes for sub step bars
	NumRunes = 8

	// DBFloor is the level drawn as an empty bar in dB mode.
	DBFloor = -100.0
)

var barRunes = [NumRunes]rune{
	SpaceRune,
	'▁',
	'▂',
	'▃',
	'▄',
	'▅',
	'▆',
	'▇',
}

// Bars folds spec into count bar heights within [0, 1]. Each bar shows the
// strongest bin it covers. Linear heights are relative to the peak; dB
// heights span DBFloor to 0.
func Bars(spec dsp.Spectrum, count int, db bool) []float64 {
	n := spec.Len()
	if count <= 0 || n == 0 {
		return nil
	}

	if count > n {
		count = n
	}

	mags := spec.Mags
	if db {
		mags = dsp.DBRef(mags, spec.Reference())
	}

	out := make([]float64, count)
	for idx := range out {
		start := idx * n / count
		end := (idx + 1) * n / count

		peak := math.Inf(-1)
		for _, m := range mags[start:end] {
			peak = math.Max(peak, m)
		}
		out[idx] = peak
	}

	if db {
		for idx, v := range out {
			out[idx] = clamp((v - DBFloor) / -DBFloor)
		}
		return out
	}

	_, top := spec.Peak()
	for idx, v := range out {
		if top > 0 {
			out[idx] = clamp(v / top)
		} else {
			out[idx] = 0
		}
	}

	return out
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// stopAndTop splits a bar of value rows into the count of full cells and
// the rune topping them.
func stopAndTop(value float64, rows int) (int, rune) {
	if value <= 0 {
		return 0, SpaceRune
	}

	if value >= float64(rows) {
		return rows, BarRune
	}

	full := int(value)
	part := int((value - float64(full)) * NumRunes)

	return full, barRunes[part]
}
