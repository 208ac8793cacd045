package spectrum

// Gray is a complementary pair of gray levels; Primary+Opposite == 255.
type Gray struct {
	Primary  uint8 `json:"primary"`
	Opposite uint8 `json:"opposite"`
}

func (g Gray) PrimaryRGB() RGB  { return RGB{g.Primary, g.Primary, g.Primary} }
func (g Gray) OppositeRGB() RGB { return RGB{g.Opposite, g.Opposite, g.Opposite} }

// BaseGray is the ungendered tone for p: 0 is white, 100 is black.
func BaseGray(p float64) uint8 {
	v := Clamp(p, MinPosition, MaxPosition)
	return toByte(255 - (v/100)*255)
}

// GrayscaleFor is shared by the badge marker, the pixel-cluster ring and the
// track marker. A female marker swaps the pair so the "self" tone stays on
// the same side of the yin-yang.
func GrayscaleFor(p float64, sex BirthSex) Gray {
	primary := BaseGray(p)
	g := Gray{Primary: primary, Opposite: 255 - primary}
	if sex == BirthSexFemale {
		g.Primary, g.Opposite = g.Opposite, g.Primary
	}
	return g
}
