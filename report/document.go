package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/oncstat/respsurv/dataset"
	"github.com/oncstat/respsurv/ols"
)

// WriteDocument renders the report into dir: two PNG figures per section
// plus a single markdown document embedding the figures, the summary
// tables and the model reports.
func WriteDocument(dir string, sections []*Section, cfg Config) error {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("report: create %s: %w", dir, err)
	}

	var b strings.Builder
	b.WriteString("# Response rate and survival outcomes\n")

	w, h := cfg.size()

	for _, s := range sections {

		cmpName := fmt.Sprintf("comparison_%s.png", s.Outcome)
		regName := fmt.Sprintf("regression_%s.png", s.Outcome)

		if err := s.Comparison.Save(w, h, filepath.Join(dir, cmpName)); err != nil {
			return fmt.Errorf("report: save %s: %w", cmpName, err)
		}
		if err := s.Regression.Save(w, h, filepath.Join(dir, regName)); err != nil {
			return fmt.Errorf("report: save %s: %w", regName, err)
		}

		fmt.Fprintf(&b, "\n## %s\n\n", s.Outcome.Label())
		fmt.Fprintf(&b, "![comparison](%s)\n\n", cmpName)

		writeSummaryTable(&b, s.Summary)

		fmt.Fprintf(&b, "\n![regression](%s)\n", regName)

		b.WriteString("\n### Per-group models\n\n")
		for _, gm := range s.Groups {
			if gm.Err != nil {
				fmt.Fprintf(&b, "Group %q: fit failed: %v\n\n", gm.Group, gm.Err)
				continue
			}
			fmt.Fprintf(&b, "```\n%s```\n\n", gm.Fit.Summary(s.Outcome.String()))
		}

		b.WriteString("### Interaction model\n\n")
		writeModel(&b, s.Outcome, s.Interaction, s.InteractionErr)

		b.WriteString("### Additive model\n\n")
		writeModel(&b, s.Outcome, s.Additive, s.AdditiveErr)
	}

	path := filepath.Join(dir, "report.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}

	return nil
}

func writeSummaryTable(b *strings.Builder, rows []CategorySummary) {

	b.WriteString("| Category | N | Median | Q1 | Q3 | Min | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			r.Category, r.N, cellVal(r.Median), cellVal(r.Q1),
			cellVal(r.Q3), cellVal(r.Min), cellVal(r.Max))
	}
}

func writeModel(b *strings.Builder, o dataset.Outcome, r *ols.Results, err error) {
	if err != nil {
		fmt.Fprintf(b, "Fit failed: %v\n\n", err)
		return
	}
	fmt.Fprintf(b, "```\n%s```\n\n", r.Summary(o.String()))
}

// cellVal formats a table cell, showing "n/a" for an undefined value.
func cellVal(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
