// internal/api/http/spectrum_handlers.go
package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/grayvisions/grayvisions/internal/spectrum"
)

// GET /api/spectrum?value=&sex=
func SpectrumHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := parseValue(w, r)
		if !ok {
			return
		}
		sex, err := spectrum.ParseBirthSex(r.URL.Query().Get("sex"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, spectrum.Read(v, sex))
	}
}

type ditherResp struct {
	Size     int      `json:"size"`
	Position int      `json:"position"`
	Gray     uint8    `json:"gray"`
	Coverage float64  `json:"coverage"`
	Black    int      `json:"black"`
	Cells    [][]int8 `json:"cells"` // [y][x], 1 = black
}

// GET /api/spectrum/dither?value=
func DitherHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := parseValue(w, r)
		if !ok {
			return
		}
		pos := spectrum.PositionFromFloat(v)
		p := pos.Float()
		cells := spectrum.DitherGrid(p)
		rows := spectrum.Rows(cells)
		out := ditherResp{
			Size:     spectrum.GridSize,
			Position: int(pos),
			Gray:     spectrum.BaseGray(p),
			Coverage: spectrum.Coverage(p),
			Black:    spectrum.BlackCount(cells),
			Cells:    make([][]int8, len(rows)),
		}
		for y, row := range rows {
			out.Cells[y] = make([]int8, len(row))
			for x, black := range row {
				if black {
					out.Cells[y][x] = 1
				}
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type stopResp struct {
	Position int    `json:"position"`
	RGB      string `json:"rgb"`
	Hex      string `json:"hex"`
}

// GET /api/spectrum/stops
func StopsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stops := spectrum.Stops()
		out := make([]stopResp, 0, len(stops))
		for _, s := range stops {
			out = append(out, stopResp{Position: s.Position, RGB: s.Color.CSS(), Hex: s.Color.Hex()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /api/spectrum/spawn?sex=F|M
func SpawnHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sex, err := spectrum.ParseBirthSex(r.URL.Query().Get("sex"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pos, ok := sex.Spawn()
		if !ok {
			pos = spectrum.Midpoint
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"birth_sex": sex,
			"position":  pos,
			"reading":   spectrum.Read(pos.Float(), sex),
		})
	}
}

// parseValue reads ?value=, defaulting to the midpoint. Out-of-range numbers
// are clamped downstream; only unparsable input is rejected.
func parseValue(w http.ResponseWriter, r *http.Request) (float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("value"))
	if raw == "" {
		return spectrum.Midpoint, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		http.Error(w, "value must be a number", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
