// Package report builds the analytical artifacts of the outcomes report:
// for each outcome measure, a grouped-comparison figure, a summary table, a
// stratified scatter/regression figure, and three least-squares model fits.
// The same routines are applied to each of the four outcome measures; a
// Section bundles the artifacts for one outcome.
package report

import (
	"image/color"

	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Config carries the presentation settings used by the figure builders.
type Config struct {

	// GroupColors maps treatment-type labels to plot colors.  Groups
	// not present in the map are assigned palette colors in order.
	GroupColors map[string]color.Color

	// PointColor is used for the jittered points in comparison figures.
	PointColor color.Color

	// RefLineColor is used for the dataset-wide median reference line.
	RefLineColor color.Color

	// Width and Height of saved figures, in inches.
	Width  float64
	Height float64

	// JitterSeed fixes the RNG used for horizontal jitter, keeping
	// figures reproducible across runs.
	JitterSeed uint64
}

// DefaultConfig returns the standard report styling.
func DefaultConfig() Config {
	return Config{
		GroupColors: map[string]color.Color{
			"Single":      plotutil.Color(0),
			"Combination": plotutil.Color(1),
			"Overall":     plotutil.Color(2),
		},
		PointColor:   color.RGBA{R: 70, G: 70, B: 70, A: 255},
		RefLineColor: color.RGBA{R: 200, A: 255},
		Width:        6,
		Height:       4,
		JitterSeed:   42,
	}
}

// groupColor returns the configured color for a group, falling back to the
// palette for unknown labels.
func (c Config) groupColor(group string, i int) color.Color {
	if col, ok := c.GroupColors[group]; ok {
		return col
	}
	return plotutil.Color(i)
}

func (c Config) size() (vg.Length, vg.Length) {
	return vg.Length(c.Width) * vg.Inch, vg.Length(c.Height) * vg.Inch
}
