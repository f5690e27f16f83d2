// Package ols fits linear models by ordinary least squares.
//
// The data are provided in column-major form as [][]Dtype together with a
// list of column names.  One column is the dependent variable; every other
// column, including any intercept column of 1's, enters the model as a
// covariate.  Rows with a missing (NaN) value in any model column are
// excluded from the fit.
package ols

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dtype is the type of all data values.
type Dtype = float64

// Model specifies a linear model to be fit by least squares.
type Model struct {
	data [][]Dtype

	names []string

	// Position of the outcome variable
	ypos int

	// Positions of the covariates
	xpos []int
}

// New returns a Model for regressing the named outcome on all remaining
// columns of the dataset.  The dataset must contain a column of 1's if an
// intercept is wanted.
func New(data [][]Dtype, names []string, yname string) (*Model, error) {

	if len(data) != len(names) {
		return nil, fmt.Errorf("ols: %d columns but %d names", len(data), len(names))
	}
	if len(data) < 2 {
		return nil, fmt.Errorf("ols: need an outcome and at least one covariate")
	}
	for j := 1; j < len(data); j++ {
		if len(data[j]) != len(data[0]) {
			return nil, fmt.Errorf("ols: column %q has length %d, expected %d",
				names[j], len(data[j]), len(data[0]))
		}
	}

	m := &Model{data: data, names: names, ypos: -1}
	for j, na := range names {
		if na == yname {
			m.ypos = j
		} else {
			m.xpos = append(m.xpos, j)
		}
	}
	if m.ypos == -1 {
		return nil, fmt.Errorf("ols: outcome variable %q not found", yname)
	}

	return m, nil
}

// NumParams returns the number of covariates in the model.
func (m *Model) NumParams() int {
	return len(m.xpos)
}

// Names returns the names of the covariates in the model.
func (m *Model) Names() []string {
	var na []string
	for _, j := range m.xpos {
		na = append(na, m.names[j])
	}
	return na
}

// complete returns the indices of the rows with no missing value in the
// outcome or any covariate.
func (m *Model) complete() []int {

	var keep []int
	cols := append([]int{m.ypos}, m.xpos...)
rows:
	for i := range m.data[0] {
		for _, j := range cols {
			if math.IsNaN(m.data[j][i]) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return keep
}

// Fit estimates the model parameters.  It fails when fewer complete
// observations than parameters remain, or when the design matrix is
// singular.
func (m *Model) Fit() (*Results, error) {

	keep := m.complete()
	n := len(keep)
	p := len(m.xpos)

	if n < p {
		return nil, fmt.Errorf("ols: %d complete observations for %d parameters", n, p)
	}

	xd := make([]float64, n*p)
	y := make([]float64, n)
	for i, r := range keep {
		y[i] = m.data[m.ypos][r]
		for k, j := range m.xpos {
			xd[i*p+k] = m.data[j][r]
		}
	}
	x := mat.NewDense(n, p, xd)

	// Normal equations.  The inverse of X'X is reused for the parameter
	// covariance matrix below.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var xtxi mat.Dense
	if err := xtxi.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("ols: singular design matrix: %w", err)
	}

	xty := mat.NewVecDense(p, nil)
	xty.MulVec(x.T(), mat.NewVecDense(n, y))
	beta := mat.NewVecDense(p, nil)
	beta.MulVec(&xtxi, xty)

	params := make([]float64, p)
	copy(params, beta.RawVector().Data)

	// Residual sum of squares
	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(x, beta)
	rss := 0.0
	for i := range y {
		d := y[i] - fitted.AtVec(i)
		rss += d * d
	}

	ybar := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		tss += (v - ybar) * (v - ybar)
	}

	dof := n - p
	sigma2 := math.NaN()
	if dof > 0 {
		sigma2 = rss / float64(dof)
	}

	vcov := make([]float64, p*p)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			vcov[i*p+j] = sigma2 * xtxi.At(i, j)
		}
	}

	r2 := math.NaN()
	if tss > 0 {
		r2 = 1 - rss/tss
	}

	rslt := &Results{
		model:  m,
		params: params,
		xnames: m.Names(),
		vcov:   vcov,
		nobs:   n,
		dof:    dof,
		sigma2: sigma2,
		rsq:    r2,
	}
	rslt.inference()

	return rslt, nil
}

// Results holds the estimates and fit statistics of a fitted model.
type Results struct {
	model   *Model
	params  []float64
	xnames  []string
	vcov    []float64
	stderr  []float64
	tvals   []float64
	pvalues []float64
	nobs    int
	dof     int
	sigma2  float64
	rsq     float64
}

// Model returns the model that produced the results.
func (rslt *Results) Model() *Model {
	return rslt.model
}

// Names returns the covariate names for the variables in the model.
func (rslt *Results) Names() []string {
	return rslt.xnames
}

// Params returns the point estimates of the model parameters.
func (rslt *Results) Params() []float64 {
	return rslt.params
}

// VCov returns the sampling covariance matrix of the parameter estimates,
// vectorized to one dimension.
func (rslt *Results) VCov() []float64 {
	return rslt.vcov
}

// StdErr returns the standard errors of the parameter estimates.
func (rslt *Results) StdErr() []float64 {
	return rslt.stderr
}

// TStats returns the t-statistics for the null hypothesis that each
// parameter is zero.
func (rslt *Results) TStats() []float64 {
	return rslt.tvals
}

// PValues returns the two-sided p-values of the t-statistics, based on a
// Student's t reference distribution with NumObs - NumParams degrees of
// freedom.
func (rslt *Results) PValues() []float64 {
	return rslt.pvalues
}

// NumObs returns the number of complete observations used in the fit.
func (rslt *Results) NumObs() int {
	return rslt.nobs
}

// DF returns the residual degrees of freedom.
func (rslt *Results) DF() int {
	return rslt.dof
}

// RSquared returns the coefficient of determination.
func (rslt *Results) RSquared() float64 {
	return rslt.rsq
}

// Sigma returns the residual standard deviation.
func (rslt *Results) Sigma() float64 {
	return math.Sqrt(rslt.sigma2)
}

// Coef returns the estimate for the named covariate, and false if the model
// has no such covariate.
func (rslt *Results) Coef(name string) (float64, bool) {
	for i, na := range rslt.xnames {
		if na == name {
			return rslt.params[i], true
		}
	}
	return 0, false
}

// PValue returns the p-value for the named covariate, and false if the
// model has no such covariate.
func (rslt *Results) PValue(name string) (float64, bool) {
	for i, na := range rslt.xnames {
		if na == name {
			return rslt.pvalues[i], true
		}
	}
	return 0, false
}

// inference fills in the standard errors, t-statistics and p-values.  With
// zero residual degrees of freedom these are all NaN.
func (rslt *Results) inference() {

	p := len(rslt.params)
	rslt.stderr = make([]float64, p)
	rslt.tvals = make([]float64, p)
	rslt.pvalues = make([]float64, p)

	if rslt.dof < 1 {
		nan := math.NaN()
		for i := 0; i < p; i++ {
			rslt.stderr[i] = nan
			rslt.tvals[i] = nan
			rslt.pvalues[i] = nan
		}
		return
	}

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(rslt.dof)}
	for i := 0; i < p; i++ {
		rslt.stderr[i] = math.Sqrt(rslt.vcov[i*p+i])
		rslt.tvals[i] = rslt.params[i] / rslt.stderr[i]
		rslt.pvalues[i] = 2 * tdist.CDF(-math.Abs(rslt.tvals[i]))
	}
}

// FittedValues returns the fitted values for the rows used in the fit.
func (rslt *Results) FittedValues() []float64 {

	m := rslt.model
	keep := m.complete()
	fv := make([]float64, len(keep))
	for i, r := range keep {
		for k, j := range m.xpos {
			fv[i] += rslt.params[k] * m.data[j][r]
		}
	}
	return fv
}

// Predict evaluates the fitted linear predictor at the given covariate
// values, which must be ordered as in Names.
func (rslt *Results) Predict(x []float64) float64 {
	if len(x) != len(rslt.params) {
		panic(fmt.Sprintf("ols: Predict got %d values for %d parameters",
			len(x), len(rslt.params)))
	}
	return floats.Dot(rslt.params, x)
}
