package spectrum

import "math"

// Reading is everything the main page derives from one slider value.
type Reading struct {
	Position        Position  `json:"position"`
	BirthSex        BirthSex  `json:"birth_sex"`
	Label           Label     `json:"label"`
	Intensity       float64   `json:"intensity"`
	RiskPercent     int       `json:"risk_percent"`
	RiskLabel       RiskLabel `json:"risk_label"`
	RiskColor       string    `json:"risk_color"`
	RiskColorSoft   string    `json:"risk_color_soft"`
	RiskColorHex    string    `json:"risk_color_hex"`
	Gray            Gray      `json:"gray"`
	CenterProximity float64   `json:"center_proximity"`
	ReflectedPos    Position  `json:"reflected_position"`
	InternalCopy    string    `json:"internal_copy"`
	ExternalCopy    string    `json:"external_copy"`
}

// Read clamps the raw value once and derives the rest from the clamped
// position.
func Read(raw float64, sex BirthSex) Reading {
	pos := PositionFromFloat(raw)
	p := pos.Float()
	label := LabelFor(p)
	risk := StressRiskPercent(p)
	color := ColorFor(p)
	return Reading{
		Position:        pos,
		BirthSex:        sex,
		Label:           label,
		Intensity:       IntensityFor(p),
		RiskPercent:     risk,
		RiskLabel:       StressRiskLabel(risk),
		RiskColor:       color.RGB.CSS(),
		RiskColorSoft:   color.Soft.CSS(),
		RiskColorHex:    color.RGB.Hex(),
		Gray:            GrayscaleFor(p, sex),
		CenterProximity: CenterProximity(p),
		ReflectedPos:    MaxPosition - pos,
		InternalCopy:    InternalCopy(label),
		ExternalCopy:    ExternalCopy(label),
	}
}

// CenterProximity drives the glow near the midpoint: 1 at 50, 0 beyond ±15.
func CenterProximity(p float64) float64 {
	d := math.Abs(p-Midpoint) / 15
	if math.IsNaN(d) {
		return 0
	}
	return 1 - math.Min(1, d)
}

func InternalCopy(l Label) string {
	switch l {
	case LeaningFeminine:
		return "You experience yourself as more feminine."
	case LeaningMasculine:
		return "You experience yourself as more masculine."
	default:
		return "You experience yourself near perceptual balance."
	}
}

func ExternalCopy(l Label) string {
	switch l {
	case LeaningFeminine:
		return "In social contrast, others may perceive increased masculinity in those around you."
	case LeaningMasculine:
		return "In social contrast, others may perceive increased femininity in those around you."
	default:
		return "Others may interpret you variably depending on context and contrast."
	}
}
