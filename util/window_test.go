package util

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestMovingWindow(t *testing.T) {
	mw := NewMovingWindow(3)

	if mean, std := mw.Update(2); mean != 2 || std != 0 {
		t.Errorf("one value: %f %f", mean, std)
	}

	mw.Update(4)
	mean, std := mw.Update(6)
	if math.Abs(mean-4) > tolerance || math.Abs(std-2) > tolerance {
		t.Errorf("2 4 6: %f %f", mean, std)
	}

	// 2 falls out
	mean, std = mw.Update(8)
	if math.Abs(mean-6) > tolerance || math.Abs(std-2) > tolerance {
		t.Errorf("4 6 8: %f %f", mean, std)
	}

	if mw.Len() != 3 || mw.Cap() != 3 {
		t.Errorf("len %d cap %d", mw.Len(), mw.Cap())
	}

	// 4 falls out
	mean, _ = mw.Drop(1)
	if math.Abs(mean-7) > tolerance || mw.Len() != 2 {
		t.Errorf("6 8: %f with %d values", mean, mw.Len())
	}

	mean, std = mw.Drop(5)
	if mean != 0 || std != 0 || mw.Len() != 0 {
		t.Errorf("empty: %f %f %d", mean, std, mw.Len())
	}

	if mean, _ := mw.Update(-1); mean != -1 {
		t.Errorf("after drain: %f", mean)
	}
}

func TestMovingWindowLongRun(t *testing.T) {
	mw := NewMovingWindow(10)

	for i := 0; i < 10000; i++ {
		mw.Update(float64(i % 10))
	}

	mean, std := mw.Stats()
	if math.Abs(mean-4.5) > tolerance {
		t.Errorf("mean %f", mean)
	}
	if want := math.Sqrt(82.5 / 9); math.Abs(std-want) > 1e-6 {
		t.Errorf("std %f, want %f", std, want)
	}
}

func TestRollingMean(t *testing.T) {
	got := RollingMean([]float64{1, 2, 3, 4, 5}, 2)
	want := []float64{1.5, 2.5, 3.5, 4.5}

	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("mean %d = %f, want %f", i, got[i], want[i])
		}
	}

	if RollingMean([]float64{1}, 2) != nil {
		t.Error("expected nil for a short series")
	}
}
