package report

import (
	"fmt"
	"io"
	"time"

	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/burst"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

const defaultTitle = "Pipeline Integrity Assessment"

// WritePDF renders an assessment report for one analysis run.
func WritePDF(w io.Writer, meta Meta, in analysis.Input, res analysis.Result, now time.Time) error {
	if meta.Title == "" {
		meta.Title = defaultTitle
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; the Greek letters in equations need translating
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Input parameters")
	rows := [][2]string{
		{"Pipe thickness, t", mm(in.Geometry.ThicknessMM)},
		{"Pipe diameter, D", mm(in.Geometry.DiameterMM)},
		{"Pipe length, L", mm(in.Geometry.LengthMM)},
		{"Corrosion length, Lc", mm(in.Defect.LengthMM)},
		{"Corrosion depth, Dc", mm(in.Defect.DepthMM)},
		{"Yield stress, Sy", mpa(in.YieldMPa)},
		{"Ultimate tensile strength, UTS", mpa(in.UTSMPa)},
		{"Max operating pressure", mpa(in.MaxMPa)},
		{"Min operating pressure", mpa(in.MinMPa)},
	}
	for _, r := range rows {
		row(pdf, r[0], r[1])
	}

	section(pdf, "Burst pressure")
	for _, m := range burst.Models {
		row(pdf, m.Label(), mpa(res.Burst.Pressure(m)))
	}

	section(pdf, "Stress analysis")
	row(pdf, "Max von Mises stress", mpa(res.Stress.VonMisesMax))
	row(pdf, "Min von Mises stress", mpa(res.Stress.VonMisesMin))
	row(pdf, "Alternating stress", mpa(res.Stress.Alternating))
	row(pdf, "Mean stress", mpa(res.Stress.Mean))
	row(pdf, "Endurance limit", mpa(res.Stress.Endurance))

	section(pdf, "Fatigue assessment")
	for _, a := range res.Fatigue.Criteria {
		status := "SAFE"
		if !a.Safe {
			status = "UNSAFE"
		}
		pdf.CellFormat(45, 6, string(a.Criterion), "", 0, "L", false, 0, "")
		pdf.CellFormat(75, 6, tr(a.Equation), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.3f", a.Ratio), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, status, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if meta.Notes != "" {
		section(pdf, "Notes")
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(100, 6, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, value, "B", 1, "R", false, 0, "")
}

func mm(v float64) string  { return fmt.Sprintf("%.2f mm", v) }
func mpa(v float64) string { return fmt.Sprintf("%.2f MPa", v) }
