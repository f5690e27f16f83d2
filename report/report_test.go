package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/oncstat/respsurv/dataset"
)

func scalarClose(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps
}

// testTable has two treatment-type groups observed at the same response
// rates, outcome = group offset + residuals that are exactly orthogonal to
// the rate, so within-group slopes are zero and the groups share a slope.
func testTable() *dataset.Table {

	rates := []float64{0, 10, 20, 30, 40}
	resid := []float64{1, -1, 0, -1, 1}
	cats := []dataset.Category{
		dataset.CatUnder10, dataset.Cat10to20, dataset.Cat20to30,
		dataset.Cat30Plus, dataset.Cat30Plus,
	}

	t := new(dataset.Table)
	for _, g := range []struct {
		label  string
		offset float64
	}{
		{"Single", 5},
		{"Combination", 8},
	} {
		for i, r := range rates {
			t.ResponseRate = append(t.ResponseRate, r)
			t.Category = append(t.Category, cats[i])
			t.TreatmentType = append(t.TreatmentType, g.label)

			y := g.offset + resid[i]
			t.OSIntervention = append(t.OSIntervention, y)
			t.OSControl = append(t.OSControl, y-2)
			t.PFSIntervention = append(t.PFSIntervention, y/2)
			t.PFSControl = append(t.PFSControl, y/2-1)
			t.OSDiff = append(t.OSDiff, 2)
			t.PFSDiff = append(t.PFSDiff, 1)
		}
	}

	return t
}

func TestSummaryByCategory(t *testing.T) {

	tbl := testTable()
	rows := SummaryByCategory(tbl, dataset.OSMonths)

	// All four categories are present in the fixture.
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, r := range rows {
		if r.Category != dataset.Categories()[i] {
			t.Errorf("row %d has category %v", i, r.Category)
		}
		if !(r.Min <= r.Q1 && r.Q1 <= r.Median && r.Median <= r.Q3 && r.Q3 <= r.Max) {
			t.Errorf("row %d ordering violated: %+v", i, r)
		}
	}

	// Two rows per group land in 30+; category "<10" has the rate-0 row
	// of each group, values 6 and 9.
	if rows[0].N != 2 || !scalarClose(rows[0].Median, 7.5, 1e-12) {
		t.Errorf("category <10: %+v", rows[0])
	}
	if rows[3].N != 4 {
		t.Errorf("category 30+: %+v", rows[3])
	}
}

func TestSummaryByCategoryAllMissing(t *testing.T) {

	tbl := testTable()
	for i := range tbl.OSIntervention {
		if tbl.Category[i] == dataset.Cat10to20 {
			tbl.OSIntervention[i] = math.NaN()
		}
	}

	rows := SummaryByCategory(tbl, dataset.OSMonths)
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[1].N != 0 || !math.IsNaN(rows[1].Median) {
		t.Errorf("all-missing category: %+v", rows[1])
	}
}

func TestGroupModels(t *testing.T) {

	tbl := testTable()
	models := GroupModels(tbl, dataset.OSMonths)

	if len(models) != len(tbl.TreatmentGroups()) {
		t.Fatalf("got %d models", len(models))
	}

	gm, ok := ModelByGroup(models, "Single")
	if !ok || gm.Err != nil {
		t.Fatalf("Single model: ok=%v err=%v", ok, gm.Err)
	}

	// Residuals are orthogonal to rate, so the slope is exactly zero and
	// the intercept equals the group offset.
	if b1, _ := gm.Fit.Coef(varRate); !scalarClose(b1, 0, 1e-10) {
		t.Errorf("slope=%v", b1)
	}
	if b0, _ := gm.Fit.Coef(varIntercept); !scalarClose(b0, 5, 1e-10) {
		t.Errorf("intercept=%v", b0)
	}

	gm, ok = ModelByGroup(models, "Combination")
	if !ok || gm.Err != nil {
		t.Fatalf("Combination model: ok=%v err=%v", ok, gm.Err)
	}
	if b0, _ := gm.Fit.Coef(varIntercept); !scalarClose(b0, 8, 1e-10) {
		t.Errorf("intercept=%v", b0)
	}
}

// A group with a single observation fails its own fit without affecting
// the other group's model.
func TestGroupModelsSingleton(t *testing.T) {

	tbl := testTable()
	tbl.ResponseRate = append(tbl.ResponseRate, 15)
	tbl.Category = append(tbl.Category, dataset.Cat10to20)
	tbl.TreatmentType = append(tbl.TreatmentType, "Other")
	tbl.OSIntervention = append(tbl.OSIntervention, 12)
	tbl.OSControl = append(tbl.OSControl, 10)
	tbl.PFSIntervention = append(tbl.PFSIntervention, 6)
	tbl.PFSControl = append(tbl.PFSControl, 5)
	tbl.OSDiff = append(tbl.OSDiff, 2)
	tbl.PFSDiff = append(tbl.PFSDiff, 1)

	models := GroupModels(tbl, dataset.OSMonths)
	if len(models) != 3 {
		t.Fatalf("got %d models", len(models))
	}

	gm, _ := ModelByGroup(models, "Other")
	if gm.Err == nil {
		t.Error("singleton group should fail its fit")
	}
	gm, _ = ModelByGroup(models, "Single")
	if gm.Err != nil {
		t.Errorf("Single group affected: %v", gm.Err)
	}
}

// With identical slopes in both groups, the interaction term must be
// reported as non-significant.
func TestInteractionModelNull(t *testing.T) {

	tbl := testTable()
	r, err := InteractionModel(tbl, dataset.OSMonths)
	if err != nil {
		t.Fatal(err)
	}

	if n := len(r.Params()); n != 4 {
		t.Fatalf("got %d parameters", n)
	}

	b, ok := r.Coef("rate:type[Combination]")
	if !ok {
		t.Fatalf("no interaction term; names=%v", r.Names())
	}
	if !scalarClose(b, 0, 1e-10) {
		t.Errorf("interaction coefficient=%v", b)
	}
	p, _ := r.PValue("rate:type[Combination]")
	if p < 0.95 {
		t.Errorf("interaction p=%v, want ~1", p)
	}
}

func TestAdditiveModel(t *testing.T) {

	tbl := testTable()
	r, err := AdditiveModel(tbl, dataset.OSMonths)
	if err != nil {
		t.Fatal(err)
	}

	if n := len(r.Params()); n != 3 {
		t.Fatalf("got %d parameters", n)
	}

	// Balanced design: rate slope 0, type offset 8-5.
	if b, _ := r.Coef(varRate); !scalarClose(b, 0, 1e-10) {
		t.Errorf("rate=%v", b)
	}
	if b, _ := r.Coef("type[Combination]"); !scalarClose(b, 3, 1e-10) {
		t.Errorf("type=%v", b)
	}
}

func TestFigures(t *testing.T) {

	tbl := testTable()
	cfg := DefaultConfig()

	if _, err := ComparisonFigure(tbl, dataset.OSMonths, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := RegressionFigure(tbl, dataset.PFSDifference, cfg); err != nil {
		t.Fatal(err)
	}

	// A group left with one usable pair keeps its points but the figure
	// still builds.
	for i := range tbl.OSIntervention {
		if tbl.TreatmentType[i] == "Combination" && i > 5 {
			tbl.OSIntervention[i] = math.NaN()
		}
	}
	if _, err := RegressionFigure(tbl, dataset.OSMonths, cfg); err != nil {
		t.Fatal(err)
	}
}

func TestWriteDocument(t *testing.T) {

	tbl := testTable()
	cfg := DefaultConfig()

	sections, err := BuildSections(tbl, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 4 {
		t.Fatalf("got %d sections", len(sections))
	}

	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteDocument(dir, sections, cfg); err != nil {
		t.Fatal(err)
	}

	want := []string{"report.md"}
	for _, o := range dataset.Outcomes() {
		want = append(want,
			"comparison_"+o.String()+".png",
			"regression_"+o.String()+".png")
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}
