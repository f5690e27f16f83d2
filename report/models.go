package report

import (
	"fmt"

	"github.com/oncstat/respsurv/dataset"
	"github.com/oncstat/respsurv/ols"
)

// Variable names used in the model design matrices.
const (
	varIntercept = "icept"
	varRate      = "rate"
)

// GroupModel is the univariate fit outcome ~ rate within one
// treatment-type group.  Err is set when the group's fit failed, e.g. with
// a single observation; a failed group does not affect the other groups.
type GroupModel struct {
	Group string
	Fit   *ols.Results
	Err   error
}

// GroupModels fits an independent model outcome ~ rate within each
// treatment-type group present in the table, one model per distinct group,
// in order of first appearance.
func GroupModels(t *dataset.Table, o dataset.Outcome) []GroupModel {

	var models []GroupModel
	for _, g := range t.TreatmentGroups() {

		x, y := t.GroupPairs(o, g)
		icept := make([]float64, len(x))
		for i := range icept {
			icept[i] = 1
		}

		gm := GroupModel{Group: g}
		m, err := ols.New([][]ols.Dtype{y, icept, x},
			[]string{o.String(), varIntercept, varRate}, o.String())
		if err != nil {
			gm.Err = fmt.Errorf("group %q: %w", g, err)
		} else if gm.Fit, err = m.Fit(); err != nil {
			gm.Err = fmt.Errorf("group %q: %w", g, err)
		}

		models = append(models, gm)
	}

	return models
}

// ModelByGroup returns the model for the given treatment-type label.
func ModelByGroup(models []GroupModel, group string) (GroupModel, bool) {
	for _, gm := range models {
		if gm.Group == group {
			return gm, true
		}
	}
	return GroupModel{}, false
}

// typeDesign returns indicator columns for every treatment-type group after
// the first (the reference level), with their variable names.
func typeDesign(t *dataset.Table) ([][]float64, []string) {

	groups := t.TreatmentGroups()
	if len(groups) == 0 {
		return nil, nil
	}
	n := t.NumObs()

	var cols [][]float64
	var names []string
	for _, g := range groups[1:] {
		ind := make([]float64, n)
		for i, ti := range t.TreatmentType {
			if ti == g {
				ind[i] = 1
			}
		}
		cols = append(cols, ind)
		names = append(names, fmt.Sprintf("type[%s]", g))
	}

	return cols, names
}

// buildModel assembles and fits outcome ~ rate + type indicators, plus
// rate-by-type interaction columns when interact is true.
func buildModel(t *dataset.Table, o dataset.Outcome, interact bool) (*ols.Results, error) {

	n := t.NumObs()
	icept := make([]float64, n)
	for i := range icept {
		icept[i] = 1
	}

	data := [][]ols.Dtype{t.OutcomeColumn(o), icept, t.ResponseRate}
	names := []string{o.String(), varIntercept, varRate}

	tcols, tnames := typeDesign(t)
	data = append(data, tcols...)
	names = append(names, tnames...)

	if interact {
		for k, col := range tcols {
			prod := make([]float64, n)
			for i := range prod {
				prod[i] = t.ResponseRate[i] * col[i]
			}
			data = append(data, prod)
			names = append(names, varRate+":"+tnames[k])
		}
	}

	m, err := ols.New(data, names, o.String())
	if err != nil {
		return nil, err
	}
	return m.Fit()
}

// InteractionModel fits outcome ~ rate + type + rate:type across the whole
// table.  The rate:type coefficients test whether the outcome-vs-rate slope
// differs between treatment types.
func InteractionModel(t *dataset.Table, o dataset.Outcome) (*ols.Results, error) {
	return buildModel(t, o, true)
}

// AdditiveModel fits outcome ~ rate + type across the whole table, testing
// for a rate effect after adjusting for a type-level offset.
func AdditiveModel(t *dataset.Table, o dataset.Outcome) (*ols.Results, error) {
	return buildModel(t, o, false)
}
