// Command respsurv builds the response-rate vs. survival outcomes report
// from a clinical-outcomes workbook.
//
// Usage:
//
//	respsurv input.xlsx outdir
//
// The workbook must contain a sheet named "og" with the response rate,
// survival and treatment-type columns.  The report (figures and a markdown
// document) is written into outdir.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/oncstat/respsurv/dataset"
	"github.com/oncstat/respsurv/report"
)

func main() {

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	}))

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: respsurv input.xlsx outdir")
		os.Exit(2)
	}
	input, outdir := os.Args[1], os.Args[2]

	tbl, err := dataset.Load(input)
	if err != nil {
		log.Error("loading failed", "err", err)
		os.Exit(1)
	}
	log.Info("loaded observations", "file", input, "rows", tbl.NumObs(),
		"groups", tbl.TreatmentGroups())

	sections, err := report.BuildSections(tbl, report.DefaultConfig())
	if err != nil {
		log.Error("building report failed", "err", err)
		os.Exit(1)
	}

	for _, s := range sections {
		for _, gm := range s.Groups {
			if gm.Err != nil {
				log.Warn("group model not fit", "outcome", s.Outcome.String(),
					"group", gm.Group, "err", gm.Err)
			}
		}
		if s.InteractionErr != nil {
			log.Warn("interaction model not fit", "outcome", s.Outcome.String(),
				"err", s.InteractionErr)
		}
		if s.AdditiveErr != nil {
			log.Warn("additive model not fit", "outcome", s.Outcome.String(),
				"err", s.AdditiveErr)
		}
	}

	if err := report.WriteDocument(outdir, sections, report.DefaultConfig()); err != nil {
		log.Error("writing report failed", "err", err)
		os.Exit(1)
	}
	log.Info("report written", "dir", outdir)
}
