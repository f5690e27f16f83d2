package report

import (
	"fmt"

	"gonum.org/v1/plot"

	"github.com/oncstat/respsurv/dataset"
	"github.com/oncstat/respsurv/describe"
	"github.com/oncstat/respsurv/ols"
)

// CategorySummary is the five-number summary of an outcome within one
// response-rate category.
type CategorySummary struct {
	Category dataset.Category
	describe.Summary
}

// SummaryByCategory computes the outcome summary for each response-rate
// category present in the table, in the fixed display order.  Missing
// outcome values are excluded; a category whose values are all missing has
// N 0 and NaN statistics.
func SummaryByCategory(t *dataset.Table, o dataset.Outcome) []CategorySummary {

	present := make(map[dataset.Category]bool)
	for _, c := range t.Category {
		present[c] = true
	}

	var rows []CategorySummary
	for _, c := range dataset.Categories() {
		if !present[c] {
			continue
		}
		rows = append(rows, CategorySummary{
			Category: c,
			Summary:  describe.Summarize(t.CategoryValues(o, c)),
		})
	}

	return rows
}

// Section holds the artifacts of the report for one outcome measure.
type Section struct {
	Outcome dataset.Outcome

	Comparison *plot.Plot
	Summary    []CategorySummary
	Regression *plot.Plot

	// Model 1: per-treatment-type univariate fits
	Groups []GroupModel

	// Model 2: rate + type + rate:type
	Interaction    *ols.Results
	InteractionErr error

	// Model 3: rate + type
	Additive    *ols.Results
	AdditiveErr error
}

// NewSection builds the full set of artifacts for one outcome.  Figure
// construction errors fail the section; model degeneracy is recorded in the
// section rather than failing it.
func NewSection(t *dataset.Table, o dataset.Outcome, cfg Config) (*Section, error) {

	s := &Section{Outcome: o}

	var err error
	if s.Comparison, err = ComparisonFigure(t, o, cfg); err != nil {
		return nil, fmt.Errorf("report: %s: %w", o, err)
	}
	if s.Regression, err = RegressionFigure(t, o, cfg); err != nil {
		return nil, fmt.Errorf("report: %s: %w", o, err)
	}

	s.Summary = SummaryByCategory(t, o)
	s.Groups = GroupModels(t, o)
	s.Interaction, s.InteractionErr = InteractionModel(t, o)
	s.Additive, s.AdditiveErr = AdditiveModel(t, o)

	return s, nil
}

// BuildSections builds one report section per outcome measure, in report
// order.
func BuildSections(t *dataset.Table, cfg Config) ([]*Section, error) {

	var sections []*Section
	for _, o := range dataset.Outcomes() {
		s, err := NewSection(t, o, cfg)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}

	return sections, nil
}
