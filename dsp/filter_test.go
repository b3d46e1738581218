package dsp

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestSavGolConfig(t *testing.T) {
	_, err := NewSavGol(SavGolConfig{})

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if got := strings.Join(cfgErr.Missing, ","); got != "window_length,polyorder,axis" {
		t.Errorf("missing %q", got)
	}

	cases := []SavGolConfig{
		{WindowLength: Int(0), PolyOrder: Int(0), Axis: Int(0)},
		{WindowLength: Int(4), PolyOrder: Int(4), Axis: Int(0)},
		{WindowLength: Int(5), PolyOrder: Int(5), Axis: Int(0)},
		{WindowLength: Int(5), PolyOrder: Int(2), Axis: Int(2)},
	}
	for _, cfg := range cases {
		if _, err := NewSavGol(cfg); err == nil {
			t.Errorf("expected error for %d/%d/%d", *cfg.WindowLength, *cfg.PolyOrder, *cfg.Axis)
		}
	}
}

func TestSavGolConstant(t *testing.T) {
	sg, err := NewSavGol(SavGolConfig{WindowLength: Int(5), PolyOrder: Int(2), Axis: Int(0)})
	if err != nil {
		t.Fatal(err)
	}

	axes := [][]float64{Ramp(3, 0, 50), Ramp(-1, 0, 50)}

	out, err := sg.Apply(axes)
	if err != nil {
		t.Fatal(err)
	}

	if len(out) != 2 || len(out[0]) != 50 || len(out[1]) != 50 {
		t.Fatalf("unexpected shape %d", len(out))
	}

	for i := 5; i < 45; i++ {
		if math.Abs(out[0][i]-3) > 1e-9 || math.Abs(out[1][i]+1) > 1e-9 {
			t.Fatalf("sample %d = %f, %f", i, out[0][i], out[1][i])
		}
	}

	if axes[0][0] != 3 {
		t.Error("input modified")
	}
}

func TestSavGolEvenWindow(t *testing.T) {
	sg, err := NewSavGol(SavGolConfig{WindowLength: Int(20), PolyOrder: Int(3), Axis: Int(0)})
	if err != nil {
		t.Fatal(err)
	}

	const n = 100
	out, err := sg.Apply([][]float64{Ramp(1, 2, n), Ramp(-4, 0, n)})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		// the edges are fitted in place, the middle half a sample ahead
		want := 1 + 2*float64(i)
		if i >= 10 && i < n-10 {
			want += 1
		}

		if math.Abs(out[0][i]-want) > 1e-6 {
			t.Fatalf("ramp sample %d = %f, want %f", i, out[0][i], want)
		}
		if math.Abs(out[1][i]+4) > 1e-6 {
			t.Fatalf("constant sample %d = %f", i, out[1][i])
		}
	}
}

func TestSavGolEvenCubic(t *testing.T) {
	process, err := newEvenSavGol(20, 3)
	if err != nil {
		t.Fatal(err)
	}

	cubic := func(x float64) float64 { return 0.01*x*x*x - 0.5*x*x + 2*x - 3 }

	ys := make([]float64, 60)
	for i := range ys {
		ys[i] = cubic(float64(i))
	}

	out, err := process(ys, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{0, 9, 10, 30, 49, 50, 59} {
		x := float64(i)
		if i >= 10 && i < 50 {
			x += 0.5
		}
		if want := cubic(x); math.Abs(out[i]-want) > 1e-6 {
			t.Errorf("sample %d = %f, want %f", i, out[i], want)
		}
	}

	if _, err := process(ys[:19], nil); err == nil {
		t.Error("expected error for series shorter than the window")
	}
}

func TestSavGolShort(t *testing.T) {
	sg, _ := NewSavGol(SavGolConfig{WindowLength: Int(7), PolyOrder: Int(2), Axis: Int(0)})
	if _, err := sg.Apply([][]float64{{1, 2, 3}}); err == nil {
		t.Error("expected error for series shorter than the window")
	}
}

func TestDetrend(t *testing.T) {
	out := Detrend(Ramp(2, 0.5, 100))
	for i, v := range out {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("sample %d = %g after detrending a line", i, v)
		}
	}

	if out := Detrend([]float64{7}); out[0] != 0 {
		t.Errorf("single value detrends to %f", out[0])
	}
}
func TestDetrendTaper(t *testing.T) {
	const n = 65

	// symmetric parabola, its least squares line is its mean, 352
	series := make([]float64, n)
	for i := range series {
		d := float64(i - n/2)
		series[i] = d * d
	}

	out, err := NewDetrendTaper().Apply([][]float64{series})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(out[0][0]) > 1e-9 || math.Abs(out[0][n-1]) > 1e-9 {
		t.Errorf("edges %g, %g not tapered to zero", out[0][0], out[0][n-1])
	}
	if math.Abs(out[0][n/2]+352) > 1e-9 {
		t.Errorf("middle = %f, want -352", out[0][n/2])
	}
	if want := (256 - 352) * 0.5; math.Abs(out[0][16]-want) > 1e-9 {
		t.Errorf("quarter = %f, want %f", out[0][16], want)
	}
	if series[0] != 1024 {
		t.Error("input modified")
	}
}

func TestChain(t *testing.T) {
	sg, _ := NewSavGol(SavGolConfig{WindowLength: Int(5), PolyOrder: Int(2), Axis: Int(0)})
	chain := Chain{NewDetrendTaper(), sg}

	if chain.Name() != "detrend+savgol" {
		t.Errorf("name %q", chain.Name())
	}

	params := chain.Params()
	for _, key := range []string{"window_length", "polyorder", "axis", "detrend", "window"} {
		if _, ok := params[key]; !ok {
			t.Errorf("params lack %s", key)
		}
	}

	axes := [][]float64{Ramp(1, 0.1, 64)}
	out, err := chain.Apply(axes)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range out[0] {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("sample %d = %g", i, v)
		}
	}
	if axes[0][0] != 1 {
		t.Error("input modified")
	}

	_, err = Chain{sg}.Apply([][]float64{{1}})
	if err == nil || !strings.HasPrefix(err.Error(), "filter savgol") {
		t.Errorf("unexpected error %v", err)
	}
}
