package spectrum

// GridSize is the side of the pixel-cluster preview.
const GridSize = 20

// bayer8 is the site's 8x8 ordered-dither matrix. Values 0..63 each appear
// once; the layout is kept as-is for pixel parity with the browser.
var bayer8 = [8][8]uint8{
	{0, 48, 12, 60, 3, 51, 15, 63},
	{32, 16, 44, 28, 35, 19, 47, 31},
	{8, 56, 4, 52, 11, 59, 7, 55},
	{40, 24, 36, 20, 43, 27, 39, 23},
	{2, 50, 14, 62, 1, 49, 13, 61},
	{34, 18, 46, 30, 33, 17, 45, 29},
	{10, 58, 6, 54, 9, 57, 5, 53},
	{42, 26, 38, 22, 41, 25, 37, 21},
}

// Bayer8 returns a copy of the threshold matrix.
func Bayer8() [8][8]uint8 { return bayer8 }

type DitherCell struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Black bool `json:"black"`
}

// Coverage is the fraction of black cells the dither targets for p.
// The birth-sex marker never affects it.
func Coverage(p float64) float64 {
	return float64(255-BaseGray(p)) / 255
}

// DitherGrid thresholds the tiled Bayer matrix against Coverage(p) and
// returns GridSize*GridSize cells in row-major order (y outer, x inner).
func DitherGrid(p float64) []DitherCell {
	coverage := Coverage(p)
	out := make([]DitherCell, 0, GridSize*GridSize)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			t := (float64(bayer8[y%8][x%8]) + 0.5) / 64
			out = append(out, DitherCell{X: x, Y: y, Black: t < coverage})
		}
	}
	return out
}

// BlackCount counts black cells.
func BlackCount(cells []DitherCell) int {
	n := 0
	for _, c := range cells {
		if c.Black {
			n++
		}
	}
	return n
}

// Rows folds cells back into a GridSize x GridSize bitmap indexed [y][x].
func Rows(cells []DitherCell) [][]bool {
	rows := make([][]bool, GridSize)
	for i := range rows {
		rows[i] = make([]bool, GridSize)
	}
	for _, c := range cells {
		if c.Y >= 0 && c.Y < GridSize && c.X >= 0 && c.X < GridSize {
			rows[c.Y][c.X] = c.Black
		}
	}
	return rows
}
