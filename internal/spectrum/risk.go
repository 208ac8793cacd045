package spectrum

// RiskLabel names a stress-risk band.
type RiskLabel int

const (
	RiskLow RiskLabel = iota
	RiskMild
	RiskElevated
	RiskHigh
)

func (r RiskLabel) String() string {
	switch r {
	case RiskHigh:
		return "High"
	case RiskElevated:
		return "Elevated"
	case RiskMild:
		return "Mild"
	default:
		return "Low"
	}
}

func (r RiskLabel) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// StressRiskPercent is the inverse of IntensityFor: 100 at the midpoint,
// 0 at either pole.
func StressRiskPercent(p float64) int {
	return int(roundHalfUp((1 - distance(p)) * 100))
}

// StressRiskLabel thresholds are inclusive on the lower bound.
func StressRiskLabel(pct int) RiskLabel {
	switch {
	case pct >= 80:
		return RiskHigh
	case pct >= 60:
		return RiskElevated
	case pct >= 40:
		return RiskMild
	default:
		return RiskLow
	}
}
