// Package spectrum maps a position on the feminine/masculine continuum (0..100)
// to the labels, colors, gray tones and dither patterns the site renders.
//
// Everything here is pure: no I/O, no shared mutable state. Raw slider input
// goes through Clamp (or NewPosition) before reaching the mapping functions,
// so no input value, NaN included, can make them panic.
package spectrum

import "math"

const (
	MinPosition = 0
	MaxPosition = 100
	Midpoint    = 50
)

// Position is a slider value already clamped to [0,100].
type Position int

// NewPosition clamps an integer slider value.
func NewPosition(n int) Position {
	switch {
	case n < MinPosition:
		return MinPosition
	case n > MaxPosition:
		return MaxPosition
	}
	return Position(n)
}

// PositionFromFloat clamps and rounds a raw value. NaN becomes 0.
func PositionFromFloat(v float64) Position {
	return Position(roundHalfUp(Clamp(v, MinPosition, MaxPosition)))
}

func (p Position) Float() float64 { return float64(p) }

// Clamp is a saturating clamp. NaN yields min.
func Clamp(n, min, max float64) float64 {
	if math.IsNaN(n) {
		return min
	}
	return math.Min(max, math.Max(min, n))
}

// roundHalfUp rounds .5 toward +Inf, matching the browser's Math.round so
// gray and color values stay identical to what the site paints.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func toByte(x float64) uint8 {
	return uint8(Clamp(roundHalfUp(x), 0, 255))
}

// distance is |p-50|/50 capped at 1; NaN counts as the far end.
func distance(p float64) float64 {
	d := math.Abs(p-Midpoint) / Midpoint
	if math.IsNaN(d) {
		return 1
	}
	return math.Min(1, d)
}
