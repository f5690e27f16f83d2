// Package describe provides the descriptive statistics used by the report:
// a nonparametric group-comparison test and quantile summaries.  All
// routines exclude NaN values rather than propagating them.
package describe

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// KruskalResult holds the outcome of a Kruskal-Wallis rank test.
type KruskalResult struct {
	// H is the tie-corrected test statistic.
	H float64

	// P is the chi-squared upper-tail probability of H with
	// len(groups)-1 degrees of freedom.
	P float64

	// Groups is the number of groups that contained data.
	Groups int
}

// KruskalWallis performs the Kruskal-Wallis rank test of a common
// distribution across the given groups.  NaN values are excluded; groups
// that are empty after exclusion are skipped.  At least two non-empty
// groups with a total of more than two observations are required.
func KruskalWallis(groups [][]float64) (KruskalResult, error) {

	var clean [][]float64
	var all []float64
	for _, g := range groups {
		var v []float64
		for _, x := range g {
			if !math.IsNaN(x) {
				v = append(v, x)
			}
		}
		if len(v) > 0 {
			clean = append(clean, v)
			all = append(all, v...)
		}
	}

	k := len(clean)
	n := len(all)
	if k < 2 {
		return KruskalResult{}, fmt.Errorf("describe: Kruskal-Wallis needs at least two non-empty groups, have %d", k)
	}
	if n < 3 {
		return KruskalResult{}, fmt.Errorf("describe: Kruskal-Wallis needs more than two observations, have %d", n)
	}

	ranks, tiecor := midranks(all)

	// Rank sums per group; "all" holds the groups in order.
	h := 0.0
	pos := 0
	for _, g := range clean {
		rs := 0.0
		for range g {
			rs += ranks[pos]
			pos++
		}
		h += rs * rs / float64(len(g))
	}

	nf := float64(n)
	h = 12/(nf*(nf+1))*h - 3*(nf+1)
	if tiecor > 0 {
		h /= tiecor
	}

	chi2 := distuv.ChiSquared{K: float64(k - 1)}
	return KruskalResult{H: h, P: chi2.Survival(h), Groups: k}, nil
}

// midranks returns the mid-ranks (ties get the average of the ranks they
// span) of x in its original order, along with the tie-correction factor
// 1 - sum(t^3-t)/(n^3-n).
func midranks(x []float64) ([]float64, float64) {

	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })

	ranks := make([]float64, n)
	ties := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && x[idx[j]] == x[idx[i]] {
			j++
		}
		// Positions i..j-1 hold a tied run.
		r := float64(i+j+1) / 2
		for m := i; m < j; m++ {
			ranks[idx[m]] = r
		}
		t := float64(j - i)
		ties += t*t*t - t
		i = j
	}

	nf := float64(n)
	return ranks, 1 - ties/(nf*nf*nf-nf)
}
