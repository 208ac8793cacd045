package spectrum

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Midpoint(t *testing.T) {
	r := Read(50, BirthSexUnset)
	assert.Equal(t, Position(50), r.Position)
	assert.Equal(t, Balanced, r.Label)
	assert.Equal(t, 0.0, r.Intensity)
	assert.Equal(t, 100, r.RiskPercent)
	assert.Equal(t, RiskHigh, r.RiskLabel)
	assert.Equal(t, "rgb(239,68,68)", r.RiskColor)
	assert.Equal(t, "rgba(239,68,68,0.22)", r.RiskColorSoft)
	assert.Equal(t, 1.0, r.CenterProximity)
	assert.Equal(t, Position(50), r.ReflectedPos)
	assert.Equal(t, "You experience yourself near perceptual balance.", r.InternalCopy)
}

func TestRead_ClampsRawInput(t *testing.T) {
	for _, raw := range []float64{-5, math.NaN(), math.Inf(-1)} {
		r := Read(raw, BirthSexMale)
		assert.Equal(t, Position(0), r.Position)
		assert.Equal(t, LeaningFeminine, r.Label)
		assert.Equal(t, Position(100), r.ReflectedPos)
	}
	r := Read(180, BirthSexFemale)
	assert.Equal(t, Position(100), r.Position)
	assert.Equal(t, LeaningMasculine, r.Label)
	assert.Equal(t, uint8(255), r.Gray.Primary)
	assert.Equal(t, "In social contrast, others may perceive increased femininity in those around you.", r.ExternalCopy)
}

func TestCenterProximity(t *testing.T) {
	assert.Equal(t, 1.0, CenterProximity(50))
	assert.Equal(t, 0.0, CenterProximity(35))
	assert.Equal(t, 0.0, CenterProximity(90))
	assert.InDelta(t, 1.0/3, CenterProximity(60), 1e-9)
}

func TestRead_JSON(t *testing.T) {
	b, err := json.Marshal(Read(25, BirthSexFemale))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "Leaning Feminine", m["label"])
	assert.Equal(t, "Mild", m["risk_label"])
	assert.Equal(t, "F", m["birth_sex"])
	assert.Equal(t, float64(25), m["position"])
}
