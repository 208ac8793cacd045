package spectrum

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// CSS renders the color the way the site's inline styles do.
func (c RGB) CSS() string { return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B) }

func (c RGB) Hex() string { return c.Colorful().Hex() }

func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RGBA carries a fractional alpha for soft shadows.
type RGBA struct {
	RGB
	A float64 `json:"a"`
}

func (c RGBA) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, trimFloat(c.A))
}

func trimFloat(f float64) string { return fmt.Sprintf("%g", f) }

// ColorStop anchors the piecewise-linear stress colormap.
type ColorStop struct {
	Position int `json:"position"`
	Color    RGB `json:"color"`
}

var (
	emerald = RGB{52, 211, 153}
	amber   = RGB{251, 191, 36}
	orange  = RGB{251, 146, 60}
	red     = RGB{239, 68, 68}
)

// stressStops is symmetric around 50 and mirrors the risk curve: red at the
// center, emerald toward the poles.
var stressStops = [...]ColorStop{
	{0, emerald},
	{15, emerald},
	{30, amber},
	{45, orange},
	{50, red},
	{55, orange},
	{70, amber},
	{85, emerald},
	{100, emerald},
}

const (
	softAlpha = 0.22
	minSpan   = 1e-6
)

// Stops returns a copy of the stress colormap.
func Stops() []ColorStop {
	out := make([]ColorStop, len(stressStops))
	copy(out, stressStops[:])
	return out
}

// StressColor is the overlay color for a position plus its soft variant.
type StressColor struct {
	RGB  RGB
	Soft RGBA
}

// ColorFor interpolates the stress colormap at p (clamped to [0,100]).
func ColorFor(p float64) StressColor {
	c := interpolate(stressStops[:], Clamp(p, MinPosition, MaxPosition))
	return StressColor{RGB: c, Soft: RGBA{RGB: c, A: softAlpha}}
}

func interpolate(stops []ColorStop, v float64) RGB {
	i := 0
	for ; i < len(stops)-1; i++ {
		if v >= float64(stops[i].Position) && v <= float64(stops[i+1].Position) {
			break
		}
	}
	a := stops[i]
	b := stops[min(i+1, len(stops)-1)]
	span := math.Max(minSpan, float64(b.Position-a.Position))
	t := (v - float64(a.Position)) / span
	lerp := func(x, y uint8) uint8 {
		return toByte(float64(x) + (float64(y)-float64(x))*t)
	}
	return RGB{lerp(a.Color.R, b.Color.R), lerp(a.Color.G, b.Color.G), lerp(a.Color.B, b.Color.B)}
}
