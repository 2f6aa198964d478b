package analysis

import "github.com/gokugml/membench/core"

// Confidence maps the absolute score gap between the top two frameworks into
// [0.5, 1.0]: a gap of 0 yields 0.5 (a coin flip), a gap spanning the whole
// 0-10 scale yields 1.0. The function is monotonic in the gap and symmetric:
// swapping the two frameworks changes the winner, not the confidence.
func Confidence(gap float64) float64 {
	if gap < 0 {
		gap = -gap
	}
	c := 0.5 + gap/(2*float64(core.ScoreScale))
	if c > 1 {
		c = 1
	}
	return c
}
