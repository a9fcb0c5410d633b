// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/typetrial/internal/model"
)

// DefaultTolerance maps the coefficient of variation onto the consistency score.
const DefaultTolerance = 0.7

const (
	charsPerWord = 5.0
	minGap       = 0.001
	maxGap       = 2.0
	warmupGaps   = 2
)

// RawWPM counts every accepted keystroke. elapsedSeconds must be positive.
func RawWPM(typed int, elapsedSeconds float64) int {
	return int(math.RoundToEven(float64(typed) / charsPerWord / (elapsedSeconds / 60)))
}

// ActualWPM counts only net-correct keystrokes, never below zero.
func ActualWPM(typed, incorrect int, elapsedSeconds float64) int {
	wpm := RawWPM(typed-incorrect, elapsedSeconds)
	if wpm < 0 {
		return 0
	}
	return wpm
}

// Accuracy is the rounded percentage of keystrokes that were correct when
// typed. typed must be positive. The result is negative if incorrect exceeds
// typed; it is not clamped.
func Accuracy(typed, incorrect int) int {
	return int(math.RoundToEven(100 - 100*float64(incorrect)/float64(typed)))
}

// Consistency scores keystroke rhythm in [0, 1] from keystroke timestamps in
// seconds. Gaps outside [1ms, 2s] are discarded and the first two remaining
// gaps are skipped as warmup.
func Consistency(timestamps []float64, tolerance float64) float64 {
	if len(timestamps) < 2 {
		return 1
	}
	gaps := make([]float64, 0, len(timestamps)-1)
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i] - timestamps[i-1]
		if gap >= minGap && gap <= maxGap {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) <= warmupGaps {
		return 0
	}
	gaps = gaps[warmupGaps:]

	mean, stdev := meanStdev(gaps)
	cv := stdev / mean
	return math.Max(0, 1-cv/tolerance)
}

// Compute scores a finished session.
func Compute(mode model.Mode, counters model.Counters, elapsed time.Duration, tolerance float64) model.Result {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	seconds := elapsed.Seconds()
	return model.Result{
		Mode:        mode,
		Elapsed:     elapsed,
		RawWPM:      RawWPM(counters.Typed, seconds),
		ActualWPM:   ActualWPM(counters.Typed, counters.Incorrect, seconds),
		Accuracy:    Accuracy(counters.Typed, counters.Incorrect),
		Consistency: Consistency(counters.Timestamps, tolerance),
		Typed:       counters.Typed,
		Incorrect:   counters.Incorrect,
	}
}

// meanStdev returns the mean and population standard deviation.
func meanStdev(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
