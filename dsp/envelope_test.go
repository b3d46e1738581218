package dsp

import (
	"errors"
	"strings"
	"testing"
)

// bursts returns n silent samples with a 50 Hz unit sine at each
// [start, start+length) run, tiled from a single period so every
// envelope block of a burst sees the same values.
func bursts(n, length int, starts ...int) []float64 {
	period := Sine(50, 800, 1, 16)

	out := make([]float64, n)
	for _, start := range starts {
		for i := 0; i < length; i++ {
			out[start+i] = period[i%len(period)]
		}
	}
	return out
}

func TestDecimation(t *testing.T) {
	for _, n := range []int{1, 399, 400, 401, 1000, 40000, 123457} {
		for _, nOut := range []int{1, 10, 100, 1000, 100000} {
			k, nOutEff := Decimation(n, nOut)

			if k < MinDecimation {
				t.Errorf("n=%d nOut=%d: k=%d below minimum", n, nOut, k)
			}
			if nOutEff*k < n || (nOutEff-1)*k >= n {
				t.Errorf("n=%d nOut=%d: %d points of %d do not cover the series", n, nOut, nOutEff, k)
			}
			if n >= nOut*MinDecimation && nOutEff > nOut {
				t.Errorf("n=%d nOut=%d: got %d points", n, nOut, nOutEff)
			}
		}
	}
}

func TestEnvelope(t *testing.T) {
	env := Envelope([]float64{1, -1, 3, -3, 0}, 2)

	want := []float64{1, 3, 0}
	if len(env) != len(want) {
		t.Fatalf("got %d points, want %d", len(env), len(want))
	}
	for i := range want {
		if env[i] != want[i] {
			t.Errorf("point %d = %f, want %f", i, env[i], want[i])
		}
	}
}

func envelopeParams() EnvelopeParams {
	return EnvelopeParams{
		NOut:       Int(100),
		Width:      &Bound{Min: 3},
		Prominence: &Bound{Min: 0.5},
		Height:     &Bound{Min: 0.5},
	}
}

func TestEnvelopeSplitBursts(t *testing.T) {
	series := bursts(40000, 4000, 8000, 24000)

	es, err := NewEnvelopeSplit(envelopeParams())
	if err != nil {
		t.Fatal(err)
	}

	segs, err := es.Segment(series)
	if err != nil {
		t.Fatal(err)
	}

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}

	checkBounds(t, segs, len(series))

	for i, want := range [][2]int{{8000, 12000}, {24000, 28000}} {
		s := segs[i]
		if s.Start > want[0] || s.End < want[1] {
			t.Errorf("segment %d [%d, %d) misses burst [%d, %d)", i, s.Start, s.End, want[0], want[1])
		}
		if s.Start < want[0]-1000 || s.End > want[1]+1000 {
			t.Errorf("segment %d [%d, %d) too wide for burst [%d, %d)", i, s.Start, s.End, want[0], want[1])
		}
		if s.Domain != DomainSeries {
			t.Errorf("segment %d in domain %q", i, s.Domain)
		}
	}
}

func TestEnvelopeSplitSilence(t *testing.T) {
	es, _ := NewEnvelopeSplit(envelopeParams())

	segs, err := es.Segment(make([]float64, 40000))
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 0 {
		t.Errorf("silence produced %d segments", len(segs))
	}
}

func TestEnvelopeSplitMissing(t *testing.T) {
	_, err := NewEnvelopeSplit(EnvelopeParams{NOut: Int(10)})

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}

	for _, name := range []string{"width", "prominence", "height"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), "n_out") {
		t.Errorf("error %q names a given parameter", err)
	}

	p := envelopeParams()
	p.NOut = Int(0)
	if _, err := NewEnvelopeSplit(p); err == nil {
		t.Error("expected error for n_out 0")
	}
}

func TestBurstSplit(t *testing.T) {
	series := bursts(40000, 4000, 8000, 24000)

	bs, err := NewBurstSplit(BurstParams{
		Lag:       Int(5),
		Threshold: Float(3.5),
		Influence: Float(0.5),
		Block:     Int(400),
	})
	if err != nil {
		t.Fatal(err)
	}

	segs, err := bs.Segment(series)
	if err != nil {
		t.Fatal(err)
	}

	checkBounds(t, segs, len(series))

	hit := false
	for _, s := range segs {
		if s.Start < 12000 && s.End > 8000 {
			hit = true
		}
	}
	if !hit {
		t.Errorf("no segment overlaps the first burst: %+v", segs)
	}
}

func TestBurstSplitConfig(t *testing.T) {
	_, err := NewBurstSplit(BurstParams{Lag: Int(5)})
	if err == nil || !strings.Contains(err.Error(), "threshold, influence, block") {
		t.Errorf("unexpected error %v", err)
	}

	_, err = NewBurstSplit(BurstParams{
		Lag:       Int(5),
		Threshold: Float(3),
		Influence: Float(2),
		Block:     Int(10),
	})
	if err == nil {
		t.Error("expected error for influence 2")
	}

	bs, _ := NewBurstSplit(BurstParams{
		Lag:       Int(50),
		Threshold: Float(3),
		Influence: Float(0.5),
		Block:     Int(400),
	})
	if _, err := bs.Segment(make([]float64, 4000)); err == nil {
		t.Error("expected error for too few envelope points")
	}
}
