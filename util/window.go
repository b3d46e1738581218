package util

import (
	"math"
)

// MovingWindow keeps the running mean and standard deviation of the last
// Cap() values it was given.
//
// values live in a fixed ring. head is the oldest value, and the next
// value goes length slots after it. once the ring is full every update
// replaces the oldest value.
type MovingWindow struct {
	ring []float64

	head   int
	length int

	sum   float64
	sumSq float64

	average float64
	stddev  float64
}

// NewMovingWindow returns a new moving window.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}

	return &MovingWindow{
		ring: make([]float64, size),
	}
}

func (mw *MovingWindow) calcFinal() (float64, float64) {
	if mw.length == 0 {
		mw.average, mw.stddev = 0, 0
		return 0, 0
	}

	n := float64(mw.length)
	mw.average = mw.sum / n

	if mw.length > 1 {
		// sample variance, clamped against rounding below zero
		variance := (mw.sumSq - n*mw.average*mw.average) / (n - 1)
		mw.stddev = math.Sqrt(math.Max(variance, 0))
	} else {
		mw.stddev = 0
	}

	return mw.average, mw.stddev
}

// Update adds value, dropping the oldest one when the window is full.
func (mw *MovingWindow) Update(value float64) (float64, float64) {
	if mw.length < len(mw.ring) {
		mw.ring[(mw.head+mw.length)%len(mw.ring)] = value
		mw.length++
	} else {
		old := mw.ring[mw.head]
		mw.sum -= old
		mw.sumSq -= old * old

		mw.ring[mw.head] = value
		mw.head = (mw.head + 1) % len(mw.ring)
	}

	mw.sum += value
	mw.sumSq += value * value

	return mw.calcFinal()
}

// Drop removes the count oldest values.
func (mw *MovingWindow) Drop(count int) (float64, float64) {
	for count > 0 && mw.length > 0 {
		old := mw.ring[mw.head]
		mw.sum -= old
		mw.sumSq -= old * old

		mw.head = (mw.head + 1) % len(mw.ring)
		mw.length--
		count--
	}

	// start clean so rounding does not pile up
	if mw.length == 0 {
		mw.head, mw.sum, mw.sumSq = 0, 0, 0
	}

	return mw.calcFinal()
}

// Len returns how many items in the window
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns max size of window
func (mw *MovingWindow) Cap() int {
	return len(mw.ring)
}

// Mean is the moving window average
func (mw *MovingWindow) Mean() float64 {
	return mw.average
}

// StdDev is the moving window sample standard deviation
func (mw *MovingWindow) StdDev() float64 {
	return mw.stddev
}

// Stats returns the statistics of this window
func (mw *MovingWindow) Stats() (float64, float64) {
	return mw.average, mw.stddev
}

// RollingMean returns the mean of every full run of size values, so
// out[i] averages values[i:i+size]. It is nil when values is shorter than
// size.
func RollingMean(values []float64, size int) []float64 {
	if size < 1 || len(values) < size {
		return nil
	}

	mw := NewMovingWindow(size)
	out := make([]float64, 0, len(values)-size+1)

	for i, v := range values {
		mean, _ := mw.Update(v)
		if i >= size-1 {
			out = append(out, mean)
		}
	}

	return out
}
