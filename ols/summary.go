package ols

import (
	"bytes"
	"fmt"
	"strings"
)

// SummaryTable holds a formatted text summary of a fitted model.
type SummaryTable struct {

	// Title
	Title string

	// Column names
	ColNames []string

	// Formatters for the column values
	ColFmt []Fmter

	// Cols[j] is the j^th column.  Its concrete type should be a slice,
	// e.g. of numbers or strings.
	Cols []interface{}

	// Label/value pairs at the top of the summary
	Top []string

	// Messages displayed below the table
	Msg []string

	// Total width of the table
	tw int
}

// Fmter formats the elements of a column of values.
type Fmter func(interface{}) []string

// StringFmt formats a column of strings.
func StringFmt(v interface{}) []string {
	return append([]string{}, v.([]string)...)
}

// NumFmt formats a column of numbers to four significant digits.
func NumFmt(v interface{}) []string {
	var u []string
	for _, x := range v.([]float64) {
		u = append(u, fmt.Sprintf("%.4g", x))
	}
	return u
}

// Summary returns a text summary of the fitted model.
func (rslt *Results) Summary(yname string) *SummaryTable {

	s := &SummaryTable{
		Title:    "Ordinary Least Squares Results",
		ColNames: []string{"Variable", "Coefficient", "SE", "t-stat", "p-value"},
		ColFmt:   []Fmter{StringFmt, NumFmt, NumFmt, NumFmt, NumFmt},
		Cols: []interface{}{
			rslt.xnames, rslt.params, rslt.stderr, rslt.tvals, rslt.pvalues,
		},
		Top: []string{
			"Dep. var.:", yname,
			"N:", fmt.Sprintf("%d", rslt.nobs),
			"Resid. df:", fmt.Sprintf("%d", rslt.dof),
			"R-squared:", fmt.Sprintf("%.4f", rslt.rsq),
			"Resid. SD:", fmt.Sprintf("%.4f", rslt.Sigma()),
		},
	}

	return s
}

// line returns a horizontal rule filling the width of the table.
func (s *SummaryTable) line(c string) string {
	return strings.Repeat(c, s.tw) + "\n"
}

// top renders the label/value pairs above the table body.
func (s *SummaryTable) top(gap int) string {

	w := []int{0, 0}
	for j, x := range s.Top {
		if len(x) > w[j%2] {
			w[j%2] = len(x)
		}
	}

	var b bytes.Buffer
	for j, x := range s.Top {
		fmt.Fprintf(&b, fmt.Sprintf("%%-%ds", w[j%2]), x)
		if j%2 == 1 {
			b.WriteString("\n")
		} else {
			b.WriteString(strings.Repeat(" ", gap))
		}
	}
	if len(s.Top)%2 == 1 {
		b.WriteString("\n")
	}

	return b.String()
}

// String returns the table as a string.
func (s *SummaryTable) String() string {

	var tab [][]string
	var wx []int
	for j, c := range s.Cols {
		u := s.ColFmt[j](c)
		tab = append(tab, u)
		w := len(s.ColNames[j])
		for _, z := range u {
			if len(z) > w {
				w = len(z)
			}
		}
		wx = append(wx, w+2)
	}

	// Get the total width of the table
	s.tw = 0
	for _, w := range wx {
		s.tw += w
	}
	if s.tw < len(s.Title) {
		s.tw = len(s.Title)
	}

	var buf bytes.Buffer

	k := (s.tw - len(s.Title)) / 2
	if k < 0 {
		k = 0
	}
	buf.WriteString(strings.Repeat(" ", k))
	buf.WriteString(s.Title)
	buf.WriteString("\n")

	buf.WriteString(s.line("="))
	buf.WriteString(s.top(6))
	buf.WriteString(s.line("-"))

	for j, c := range s.ColNames {
		fmt.Fprintf(&buf, fmt.Sprintf("%%%ds", wx[j]), c)
	}
	buf.WriteString("\n")
	buf.WriteString(s.line("-"))

	for i := 0; i < len(tab[0]); i++ {
		for j := range tab {
			fmt.Fprintf(&buf, fmt.Sprintf("%%%ds", wx[j]), tab[j][i])
		}
		buf.WriteString("\n")
	}
	buf.WriteString(s.line("-"))

	for _, msg := range s.Msg {
		buf.WriteString(msg + "\n")
	}

	return buf.String()
}
