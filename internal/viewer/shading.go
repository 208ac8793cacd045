package viewer

import "math"

type Vec3 struct{ X, Y, Z float64 }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the zero vector unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Shading is the single-light grayscale material used for every model kind.
type Shading struct {
	LightDir Vec3    `json:"light_dir"`
	Ambient  float64 `json:"ambient"`
	Contrast float64 `json:"contrast"`
	Invert   bool    `json:"invert"`
}

func DefaultShading() Shading {
	return Shading{
		LightDir: Vec3{0.35, 0.6, 0.75}.Normalize(),
		Ambient:  0.18,
		Contrast: 1.25,
	}
}

// Shade returns the gray level in [0,1] for a surface normal.
func (s Shading) Shade(normal Vec3) float64 {
	lambert := math.Max(normal.Normalize().Dot(s.LightDir.Normalize()), 0)
	shade := mix(s.Ambient, 1, lambert)
	shade = ApplyContrast(shade, s.Contrast)
	if s.Invert {
		shade = 1 - shade
	}
	return shade
}

// ApplyContrast stretches x around mid-gray and clamps to [0,1].
func ApplyContrast(x, c float64) float64 {
	return math.Min(1, math.Max(0, (x-0.5)*c+0.5))
}

func mix(a, b, t float64) float64 { return a*(1-t) + b*t }

// FitScale is the uniform scale that makes the largest bounding-box side 1.6
// units, so every model frames the same way in the orbit view.
func FitScale(size Vec3) float64 {
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		return 1.6 / maxDim
	}
	return 1
}
