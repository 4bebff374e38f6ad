// Package stats contains result metrics and reporting.
package stats

import (
	"math"
	"strings"
	"time"
)

const sparkChars = " .:-=+*#%@"

// WordsPerMinute returns completed words per minute, rounded down.
func WordsPerMinute(words int, elapsed time.Duration) int {
	if words <= 0 || elapsed <= 0 {
		return 0
	}
	wpm := float64(words) / elapsed.Minutes()
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) {
		return 0
	}
	return int(math.Floor(wpm))
}

// Accuracy returns the share of correct characters as a whole percentage.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	acc := int(math.Floor(float64(correct) / float64(total) * 100))
	if acc < 0 {
		return 0
	}
	return acc
}

// SessionMetrics computes gross WPM (five characters per word), CPM, and
// accuracy ratio from character counts.
func SessionMetrics(correct, incorrect int, durationMs int64) (wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return wpm, cpm, accuracy
}

// Results summarizes a finished game.
type Results struct {
	Words      int
	Characters int
	Correct    int
	Incorrect  int
	Elapsed    time.Duration
	// Samples holds the WPM observed once per second while playing.
	Samples []float64
}

// WPM returns completed words per minute.
func (r Results) WPM() int {
	return WordsPerMinute(r.Words, r.Elapsed)
}

// Accuracy returns correct characters over typed characters as a percentage.
func (r Results) Accuracy() int {
	return Accuracy(r.Correct, r.Characters)
}

// GrossWPM returns correct characters per minute divided by five.
func (r Results) GrossWPM() float64 {
	wpm, _, _ := SessionMetrics(r.Correct, r.Incorrect, r.Elapsed.Milliseconds())
	return wpm
}

// CPM returns correct characters per minute.
func (r Results) CPM() float64 {
	_, cpm, _ := SessionMetrics(r.Correct, r.Incorrect, r.Elapsed.Milliseconds())
	return cpm
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Downsample averages values into at most width buckets.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
