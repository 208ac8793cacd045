package spectrum

// Label buckets a position into one of three ranges.
type Label int

const (
	Balanced Label = iota
	LeaningFeminine
	LeaningMasculine
)

func (l Label) String() string {
	switch l {
	case LeaningFeminine:
		return "Leaning Feminine"
	case LeaningMasculine:
		return "Leaning Masculine"
	default:
		return "Balanced"
	}
}

func (l Label) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// LabelFor does not clamp. 40 and 60 are both Balanced.
func LabelFor(p float64) Label {
	if p < 40 {
		return LeaningFeminine
	}
	if p > 60 {
		return LeaningMasculine
	}
	return Balanced
}

// IntensityFor is the normalized distance from the midpoint, in [0,1].
func IntensityFor(p float64) float64 {
	return distance(p)
}
