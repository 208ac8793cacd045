package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grayvisions/grayvisions/internal/spectrum"
)

var (
	spectrumSex  string
	spectrumGrid bool
)

var spectrumCmd = &cobra.Command{
	Use:   "spectrum <position>",
	Short: "Print the reading for a slider position",
	Long: `Prints every value the page derives from a slider position as JSON.
With --grid, prints the 20x20 pixel-cluster dither instead ('#' black, '.' white).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("position must be a number: %w", err)
		}
		sex, err := spectrum.ParseBirthSex(spectrumSex)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if spectrumGrid {
			_, err := fmt.Fprint(out, renderGrid(v))
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(spectrum.Read(v, sex))
	},
}

func init() {
	spectrumCmd.Flags().StringVar(&spectrumSex, "sex", "", "birth-sex marker (F or M)")
	spectrumCmd.Flags().BoolVar(&spectrumGrid, "grid", false, "print the dither grid")
}

func renderGrid(v float64) string {
	var b strings.Builder
	for _, row := range spectrum.Rows(spectrum.DitherGrid(float64(spectrum.PositionFromFloat(v)))) {
		for _, black := range row {
			if black {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
