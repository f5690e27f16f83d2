package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the workbook sheet holding the observation rows.
const SheetName = "og"

// Normalized names of the required source columns.
const (
	colResponseRate    = "response_rate_intervention"
	colOSIntervention  = "os_intervention_months"
	colOSControl       = "os_control_months"
	colPFSIntervention = "pfs_intervention"
	colPFSControl      = "pfs_control"
	colTreatmentType   = "treatment_type"
)

var requiredColumns = []string{
	colResponseRate,
	colOSIntervention,
	colOSControl,
	colPFSIntervention,
	colPFSControl,
	colTreatmentType,
}

// Load reads the workbook at path and returns the cleaned table.  It fails
// if the file cannot be opened, the sheet is absent, or any required column
// is missing from the header row; no partial table is produced.
func Load(path string) (*Table, error) {

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %q: %w", SheetName, err)
	}

	return FromRows(rows)
}

// FromRows builds the cleaned table from raw sheet rows, the first of which
// is the header.  Header names are normalized to lowercase underscore form
// before matching.
func FromRows(rows [][]string) (*Table, error) {

	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: sheet %q is empty", SheetName)
	}

	pos := make(map[string]int)
	for j, name := range rows[0] {
		pos[normalizeName(name)] = j
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := pos[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset: missing required columns: %s",
			strings.Join(missing, ", "))
	}

	t := new(Table)
	for _, row := range rows[1:] {

		rate := parseCell(cell(row, pos[colResponseRate]))
		cat, ok := classify(rate)
		if !ok {
			continue
		}

		osi := parseCell(cell(row, pos[colOSIntervention]))
		osc := parseCell(cell(row, pos[colOSControl]))
		pfi := parseCell(cell(row, pos[colPFSIntervention]))
		pfc := parseCell(cell(row, pos[colPFSControl]))

		t.ResponseRate = append(t.ResponseRate, rate)
		t.OSIntervention = append(t.OSIntervention, osi)
		t.OSControl = append(t.OSControl, osc)
		t.PFSIntervention = append(t.PFSIntervention, pfi)
		t.PFSControl = append(t.PFSControl, pfc)
		t.OSDiff = append(t.OSDiff, osi-osc)
		t.PFSDiff = append(t.PFSDiff, pfi-pfc)
		t.Category = append(t.Category, cat)
		t.TreatmentType = append(t.TreatmentType,
			strings.TrimSpace(cell(row, pos[colTreatmentType])))
	}

	return t, nil
}

// cell returns the j'th cell of the row, or "" when the row is short.
// Spreadsheet readers drop trailing empty cells.
func cell(row []string, j int) string {
	if j >= len(row) {
		return ""
	}
	return row[j]
}

// parseCell coerces a cell to a float, returning NaN for anything that does
// not parse as a number.
func parseCell(s string) Dtype {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
