package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/pipe"
	"Fatih/internal/calc/premium/batch"

	"github.com/xuri/excelize/v2"
)

// Columns is the expected sheet layout after the header row.
var Columns = []string{"name", "t", "D", "L", "Lc", "Dc", "Sy", "UTS", "Pmax", "Pmin"}

type RowError struct {
	Row   int    `json:"row"` // 1-based, as shown in the spreadsheet
	Error string `json:"error"`
}

// ReadWorkbook parses configurations from the first sheet of an XLSX file.
func ReadWorkbook(r io.Reader) ([]batch.Configuration, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("empty sheet")
	}
	cfgs, rowErrs := ParseRows(rows[1:], 2)
	return cfgs, rowErrs, nil
}

// ParseRows converts sheet rows; firstRow is the spreadsheet number of rows[0].
// Blank rows are skipped silently.
func ParseRows(rows [][]string, firstRow int) ([]batch.Configuration, []RowError) {
	var cfgs []batch.Configuration
	var rowErrs []RowError
	for i, row := range rows {
		if blank(row) {
			continue
		}
		cfg, err := parseRow(row)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: firstRow + i, Error: err.Error()})
			continue
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, rowErrs
}

func parseRow(row []string) (batch.Configuration, error) {
	if len(row) < len(Columns) {
		return batch.Configuration{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}
	v := make([]float64, len(Columns)-1)
	for i := range v {
		f, err := toFloat(row[i+1])
		if err != nil {
			return batch.Configuration{}, fmt.Errorf("column %s: %w", Columns[i+1], err)
		}
		v[i] = f
	}
	return batch.Configuration{
		Name: strings.TrimSpace(row[0]),
		Input: analysis.Input{
			Geometry: pipe.Geometry{ThicknessMM: v[0], DiameterMM: v[1], LengthMM: v[2]},
			Defect:   pipe.Defect{LengthMM: v[3], DepthMM: v[4]},
			Material: pipe.Material{YieldMPa: v[5], UTSMPa: v[6]},
			Pressure: pipe.Pressure{MaxMPa: v[7], MinMPa: v[8]},
		},
	}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}
