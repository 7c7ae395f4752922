package report

import (
	"fmt"

	"Fatih/internal/calc/burst"
	"Fatih/internal/calc/ffs"

	"github.com/xuri/excelize/v2"
)

const (
	timelineSheet = "Projection"
	summarySheet  = "Summary"
)

// ProjectionWorkbook lays out a projection as a timeline sheet and a
// failure-year summary sheet. The caller closes the file.
func ProjectionWorkbook(in ffs.Input, proj ffs.Projection) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), timelineSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := []any{"Year", "Depth (mm)", "Length (mm)"}
	for _, m := range burst.CorrodedModels {
		header = append(header, m.Label()+" burst (MPa)")
	}
	for _, m := range burst.CorrodedModels {
		header = append(header, m.Label()+" ERF")
	}
	header = append(header, "Critical ERF", "Critical model")
	if err := f.SetSheetRow(timelineSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, pt := range proj.Points {
		row := []any{pt.Year, pt.DepthMM, pt.LengthMM}
		for _, m := range burst.CorrodedModels {
			row = append(row, pt.Burst[m])
		}
		for _, m := range burst.CorrodedModels {
			row = append(row, pt.ERF[m])
		}
		row = append(row, pt.CriticalERF, pt.CriticalModel.Label())
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(timelineSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	summary := [][]any{
		{"Inspection year", in.StartYear},
		{"Projection years", in.Years},
		{"Operating pressure (MPa)", in.OperatingMaxMPa},
		{"Radial rate (mm/yr)", in.RadialMMPerYear},
		{"Axial rate (mm/yr)", in.AxialMMPerYear},
		{},
		{"Model", "Failure year"},
	}
	for _, m := range burst.CorrodedModels {
		summary = append(summary, []any{m.Label(), failureCell(proj.FailureYears, m)})
	}
	critical := any("none")
	if proj.CriticalFailureYear != nil {
		critical = *proj.CriticalFailureYear
	}
	summary = append(summary, []any{"Critical", critical})

	for i, r := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			f.Close()
			return nil, fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	return f, nil
}

func failureCell(years map[burst.Model]int, m burst.Model) any {
	if y, ok := years[m]; ok {
		return y
	}
	return "none"
}
