// Package dataset loads and cleans the clinical-outcomes table that the
// analyses in this module operate on.  The raw input is a spreadsheet with
// one row per study arm; cleaning selects the relevant columns, coerces them
// to numeric values, bins the intervention response rate into a fixed set of
// categories, and derives the intervention-minus-control difference columns.
package dataset

import (
	"math"
	"strings"
)

// Dtype is the element type of all numeric columns.
type Dtype = float64

// Category is the response-rate bucket of an observation.
type Category int

// The four response-rate categories, in display order.  Rows whose
// intervention response rate is missing or non-numeric do not receive a
// category and are dropped during cleaning.
const (
	CatUnder10 Category = iota
	Cat10to20
	Cat20to30
	Cat30Plus
)

// Categories returns the category levels in their fixed display order.
func Categories() []Category {
	return []Category{CatUnder10, Cat10to20, Cat20to30, Cat30Plus}
}

// String returns the display label of the category.
func (c Category) String() string {
	switch c {
	case CatUnder10:
		return "<10"
	case Cat10to20:
		return "10-20"
	case Cat20to30:
		return "20-30"
	case Cat30Plus:
		return "30+"
	}
	return "?"
}

// classify bins a response rate into its category.  The boundary values 10,
// 20 and 30 belong to the upper bucket.  ok is false when the rate is NaN.
func classify(rate Dtype) (Category, bool) {
	switch {
	case math.IsNaN(rate):
		return 0, false
	case rate < 10:
		return CatUnder10, true
	case rate < 20:
		return Cat10to20, true
	case rate < 30:
		return Cat20to30, true
	default:
		return Cat30Plus, true
	}
}

// Outcome identifies one of the four analyzed outcome measures.
type Outcome int

const (
	OSMonths Outcome = iota
	OSDifference
	PFSMonths
	PFSDifference
)

// Outcomes returns the outcome measures in report order.
func Outcomes() []Outcome {
	return []Outcome{OSMonths, OSDifference, PFSMonths, PFSDifference}
}

// String returns a short identifier for the outcome, usable in file names.
func (o Outcome) String() string {
	switch o {
	case OSMonths:
		return "os_months"
	case OSDifference:
		return "os_difference"
	case PFSMonths:
		return "pfs_months"
	case PFSDifference:
		return "pfs_difference"
	}
	return "?"
}

// Label returns the human-readable axis label for the outcome.
func (o Outcome) Label() string {
	switch o {
	case OSMonths:
		return "Overall survival (months)"
	case OSDifference:
		return "OS difference (months)"
	case PFSMonths:
		return "Progression-free survival (months)"
	case PFSDifference:
		return "PFS difference (months)"
	}
	return "?"
}

// Table is the cleaned dataset.  All numeric columns have the same length;
// missing values are NaN.  The table is constructed once by the loader and
// is read-only thereafter.
type Table struct {
	// ResponseRate is the intervention response rate in percent.  It is
	// never NaN; rows without a usable rate are dropped during cleaning.
	ResponseRate []Dtype

	OSIntervention  []Dtype
	OSControl       []Dtype
	PFSIntervention []Dtype
	PFSControl      []Dtype

	// Derived difference columns, intervention minus control.  NaN
	// whenever either operand is missing.
	OSDiff  []Dtype
	PFSDiff []Dtype

	// Category is the response-rate bucket of each row.
	Category []Category

	// TreatmentType is the treatment-type label of each row, e.g.
	// "Single" or "Combination".
	TreatmentType []string
}

// NumObs returns the number of rows in the table.
func (t *Table) NumObs() int {
	return len(t.ResponseRate)
}

// OutcomeColumn returns the column holding the given outcome measure.  The
// returned slice aliases the table and must not be modified.
func (t *Table) OutcomeColumn(o Outcome) []Dtype {
	switch o {
	case OSMonths:
		return t.OSIntervention
	case OSDifference:
		return t.OSDiff
	case PFSMonths:
		return t.PFSIntervention
	case PFSDifference:
		return t.PFSDiff
	}
	return nil
}

// TreatmentGroups returns the distinct treatment-type labels in order of
// first appearance.
func (t *Table) TreatmentGroups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, g := range t.TreatmentType {
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

// CategoryValues returns the non-missing values of the outcome within one
// response-rate category.
func (t *Table) CategoryValues(o Outcome, c Category) []Dtype {
	col := t.OutcomeColumn(o)
	var v []Dtype
	for i, ci := range t.Category {
		if ci == c && !math.IsNaN(col[i]) {
			v = append(v, col[i])
		}
	}
	return v
}

// GroupPairs returns the complete (response rate, outcome) pairs for one
// treatment-type group, excluding rows where the outcome is missing.
func (t *Table) GroupPairs(o Outcome, group string) (x, y []Dtype) {
	col := t.OutcomeColumn(o)
	for i := range t.ResponseRate {
		if t.TreatmentType[i] != group || math.IsNaN(col[i]) {
			continue
		}
		x = append(x, t.ResponseRate[i])
		y = append(y, col[i])
	}
	return x, y
}

// normalizeName lowercases a header cell and collapses runs of
// non-alphanumeric characters to single underscores.
func normalizeName(s string) string {
	var b strings.Builder
	pend := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pend = b.Len() > 0
			continue
		}
		if pend {
			b.WriteByte('_')
			pend = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
