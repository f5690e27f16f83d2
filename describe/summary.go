package describe

import (
	"math"
	"sort"
)

// Summary holds the five-number summary of a set of values.  All fields are
// NaN when the input contains no usable values.
type Summary struct {
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Quantile returns the p'th quantile of x after excluding NaN values.  It
// uses linear interpolation between order statistics (the usual dataframe
// default, type 7 in the Hyndman-Fan taxonomy), so the median of two values
// is their midpoint.  It returns NaN when no values remain.
func Quantile(p float64, x []float64) float64 {

	v := dropNaN(x)
	if len(v) == 0 {
		return math.NaN()
	}
	sort.Float64s(v)
	return quantileSorted(p, v)
}

// Median returns the median of x, excluding NaN values.
func Median(x []float64) float64 {
	return Quantile(0.5, x)
}

// Summarize computes the five-number summary of x, excluding NaN values.
func Summarize(x []float64) Summary {

	v := dropNaN(x)
	if len(v) == 0 {
		nan := math.NaN()
		return Summary{Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}
	sort.Float64s(v)

	return Summary{
		N:      len(v),
		Min:    v[0],
		Q1:     quantileSorted(0.25, v),
		Median: quantileSorted(0.5, v),
		Q3:     quantileSorted(0.75, v),
		Max:    v[len(v)-1],
	}
}

// quantileSorted evaluates the type-7 quantile of sorted, NaN-free v.
func quantileSorted(p float64, v []float64) float64 {

	h := p * float64(len(v)-1)
	i := int(math.Floor(h))
	if i >= len(v)-1 {
		return v[len(v)-1]
	}
	return v[i] + (h-float64(i))*(v[i+1]-v[i])
}

func dropNaN(x []float64) []float64 {
	v := make([]float64, 0, len(x))
	for _, z := range x {
		if !math.IsNaN(z) {
			v = append(v, z)
		}
	}
	return v
}
