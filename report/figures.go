package report

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/oncstat/respsurv/dataset"
	"github.com/oncstat/respsurv/describe"
)

// fmtMedian renders a median label, using "n/a" for an undefined median.
func fmtMedian(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// ComparisonFigure plots the outcome across the response-rate categories:
// jittered points and a box summary per category, a reference line at the
// dataset-wide median, a median label above each category, and the
// Kruskal-Wallis p-value in the title.  Categories appear in their fixed
// display order.
func ComparisonFigure(t *dataset.Table, o dataset.Outcome, cfg Config) (*plot.Plot, error) {

	p := plot.New()
	p.X.Label.Text = "Response rate category (%)"
	p.Y.Label.Text = o.Label()

	cats := dataset.Categories()

	var groups [][]float64
	for _, c := range cats {
		groups = append(groups, t.CategoryValues(o, c))
	}

	if kw, err := describe.KruskalWallis(groups); err != nil {
		p.Title.Text = fmt.Sprintf("%s by response rate category (p = n/a)", o.Label())
	} else {
		p.Title.Text = fmt.Sprintf("%s by response rate category (Kruskal-Wallis p = %.2f)",
			o.Label(), kw.P)
	}

	rng := rand.New(rand.NewSource(cfg.JitterSeed))

	var labXY plotter.XYs
	var labels []string

	for i, vals := range groups {

		med := describe.Median(vals)
		labels = append(labels, fmtMedian(med))

		if len(vals) == 0 {
			labXY = append(labXY, plotter.XY{X: float64(i), Y: 0})
			continue
		}

		pts := make(plotter.XYs, len(vals))
		for j, v := range vals {
			pts[j].X = float64(i) + 0.3*(rng.Float64()-0.5)
			pts[j].Y = v
		}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("report: comparison scatter: %w", err)
		}
		sc.GlyphStyle.Color = cfg.PointColor
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)

		box, err := plotter.NewBoxPlot(vg.Points(24), float64(i), plotter.Values(vals))
		if err != nil {
			return nil, fmt.Errorf("report: box plot: %w", err)
		}
		p.Add(box)

		labXY = append(labXY, plotter.XY{X: float64(i), Y: med})
	}

	// Reference line at the dataset-wide median of the outcome.
	overall := describe.Median(t.OutcomeColumn(o))
	if !math.IsNaN(overall) {
		ref, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: overall},
			{X: float64(len(cats)) - 0.5, Y: overall},
		})
		if err != nil {
			return nil, fmt.Errorf("report: reference line: %w", err)
		}
		ref.LineStyle.Color = cfg.RefLineColor
		ref.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(ref)
		p.Legend.Add(fmt.Sprintf("overall median %.2f", overall), ref)
		p.Legend.Top = true
	}

	lab, err := plotter.NewLabels(plotter.XYLabels{XYs: labXY, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("report: median labels: %w", err)
	}
	p.Add(lab)

	var names []string
	for _, c := range cats {
		names = append(names, c.String())
	}
	p.NominalX(names...)

	return p, nil
}

// RegressionFigure plots the outcome against the intervention response
// rate, colored by treatment type, with an independently fitted trend line
// per group annotated with its equation.  Groups with fewer than two
// complete pairs, or whose fit fails, get points but no line.
func RegressionFigure(t *dataset.Table, o dataset.Outcome, cfg Config) (*plot.Plot, error) {

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs. response rate by treatment type", o.Label())
	p.X.Label.Text = "Response rate, intervention (%)"
	p.Y.Label.Text = o.Label()

	models := GroupModels(t, o)

	for i, g := range t.TreatmentGroups() {

		x, y := t.GroupPairs(o, g)
		if len(x) == 0 {
			continue
		}
		col := cfg.groupColor(g, i)

		pts := make(plotter.XYs, len(x))
		for j := range x {
			pts[j].X = x[j]
			pts[j].Y = y[j]
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("report: regression scatter: %w", err)
		}
		sc.GlyphStyle.Color = col
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)

		gm, ok := ModelByGroup(models, g)
		if !ok || gm.Err != nil {
			// Too few points or a degenerate design; the group keeps
			// its points but gets no trend line.
			p.Legend.Add(g, sc)
			continue
		}

		b0, _ := gm.Fit.Coef(varIntercept)
		b1, _ := gm.Fit.Coef(varRate)

		xmin, xmax := x[0], x[0]
		for _, v := range x[1:] {
			xmin = math.Min(xmin, v)
			xmax = math.Max(xmax, v)
		}
		line, err := plotter.NewLine(plotter.XYs{
			{X: xmin, Y: b0 + b1*xmin},
			{X: xmax, Y: b0 + b1*xmax},
		})
		if err != nil {
			return nil, fmt.Errorf("report: trend line: %w", err)
		}
		line.LineStyle.Color = col
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)

		p.Legend.Add(fmt.Sprintf("%s: y = %.2f + %.2f x", g, b0, b1), sc, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	return p, nil
}
