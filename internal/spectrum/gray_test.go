package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseGray(t *testing.T) {
	assert.Equal(t, uint8(255), BaseGray(0))
	assert.Equal(t, uint8(0), BaseGray(100))
	assert.Equal(t, uint8(128), BaseGray(50))
	assert.Equal(t, uint8(191), BaseGray(25))
	assert.Equal(t, uint8(64), BaseGray(75))
	assert.Equal(t, uint8(255), BaseGray(-10))
}

func TestGrayscaleFor_Complementary(t *testing.T) {
	for _, sex := range []BirthSex{BirthSexUnset, BirthSexFemale, BirthSexMale} {
		for p := 0; p <= 100; p++ {
			g := GrayscaleFor(float64(p), sex)
			assert.Equal(t, 255, int(g.Primary)+int(g.Opposite), "p=%d sex=%v", p, sex)
		}
	}
}

func TestGrayscaleFor_FemaleSwaps(t *testing.T) {
	assert.Equal(t, GrayscaleFor(25, BirthSexMale).Primary, GrayscaleFor(75, BirthSexFemale).Primary)
	for p := 0; p <= 100; p++ {
		base := GrayscaleFor(float64(p), BirthSexUnset)
		assert.Equal(t, base, GrayscaleFor(float64(p), BirthSexMale))
		f := GrayscaleFor(float64(p), BirthSexFemale)
		assert.Equal(t, base.Primary, f.Opposite)
		assert.Equal(t, base.Opposite, f.Primary)
	}
}

// The badge, the pixel-cluster ring and the track marker all read the same
// pair; the reading bundle must agree with the direct call.
func TestGrayscaleFor_ConsistentAcrossConsumers(t *testing.T) {
	for _, sex := range []BirthSex{BirthSexUnset, BirthSexFemale, BirthSexMale} {
		for p := 0; p <= 100; p += 5 {
			direct := GrayscaleFor(float64(p), sex)
			assert.Equal(t, direct, Read(float64(p), sex).Gray)
			assert.Equal(t, BaseGray(float64(p)), GrayscaleFor(float64(p), BirthSexUnset).Primary)
		}
	}
	assert.Equal(t, "rgb(128,128,128)", GrayscaleFor(50, BirthSexUnset).PrimaryRGB().CSS())
	assert.Equal(t, "rgb(127,127,127)", GrayscaleFor(50, BirthSexUnset).OppositeRGB().CSS())
}
