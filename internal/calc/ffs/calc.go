// Package ffs projects linear corrosion growth forward in time and reports
// when each corroded-pipe burst model predicts failure at the operating pressure.
package ffs

import (
	"fmt"
	"math"

	"Fatih/internal/calc/burst"
	"Fatih/internal/calc/pipe"
)

const (
	// DepthCapFraction limits grown depth to this fraction of wall thickness.
	DepthCapFraction = 0.8
	// MaxHorizonYears bounds any projection. Services apply a tighter limit through CheckHorizon.
	MaxHorizonYears = 1000
)

type Growth struct {
	RadialMMPerYear float64 `json:"radial_corrosion_rate"`
	AxialMMPerYear  float64 `json:"axial_corrosion_rate"`
}

type Input struct {
	pipe.Geometry
	pipe.Material
	pipe.Defect
	Growth
	StartYear       int     `json:"inspection_year"`
	Years           int     `json:"projection_years"`
	OperatingMaxMPa float64 `json:"max_pressure"`
}

type Point struct {
	Year          int                     `json:"year"`
	DepthMM       float64                 `json:"depth"`
	LengthMM      float64                 `json:"length"`
	Burst         map[burst.Model]float64 `json:"burst"`
	ERF           map[burst.Model]float64 `json:"erf"`
	CriticalERF   float64                 `json:"critical_erf"`
	CriticalModel burst.Model             `json:"critical_model"`
	DepthCapped   bool                    `json:"depth_capped"`
}

type Projection struct {
	Points []Point `json:"points"`
	// first year with ERF >= 1 per model; absent if it never fails in the horizon
	FailureYears map[burst.Model]int `json:"failure_years"`
	// first year with critical ERF >= 1, nil if none
	CriticalFailureYear *int `json:"critical_failure_year"`
}

func (in Input) validate() error {
	if err := in.Geometry.Validate(); err != nil {
		return err
	}
	if err := in.Defect.Validate(in.Geometry); err != nil {
		return err
	}
	if err := in.Material.Validate(); err != nil {
		return err
	}
	if !pipe.NonNegative(in.RadialMMPerYear) {
		return &pipe.DomainError{Field: "radial_corrosion_rate", Value: in.RadialMMPerYear, Reason: "must be a finite non-negative number"}
	}
	if !pipe.NonNegative(in.AxialMMPerYear) {
		return &pipe.DomainError{Field: "axial_corrosion_rate", Value: in.AxialMMPerYear, Reason: "must be a finite non-negative number"}
	}
	if in.Years < 0 {
		return &pipe.DomainError{Field: "projection_years", Value: float64(in.Years), Reason: "must not be negative"}
	}
	if in.Years > MaxHorizonYears {
		return &pipe.DomainError{
			Field:  "projection_years",
			Value:  float64(in.Years),
			Reason: fmt.Sprintf("must not exceed %d", MaxHorizonYears),
		}
	}
	if in.StartYear > math.MaxInt-in.Years {
		return &pipe.DomainError{Field: "projection_years", Value: float64(in.Years), Reason: "end year overflows"}
	}
	if !pipe.NonNegative(in.OperatingMaxMPa) {
		return &pipe.DomainError{Field: "max_pressure", Value: in.OperatingMaxMPa, Reason: "must be a finite non-negative number"}
	}
	return nil
}

// Project returns Years+1 points, one per year from StartYear inclusive.
func Project(in Input) (Projection, error) {
	if err := in.validate(); err != nil {
		return Projection{}, err
	}

	depthCap := DepthCapFraction * in.ThicknessMM
	proj := Projection{
		Points:       make([]Point, 0, in.Years+1),
		FailureYears: make(map[burst.Model]int, len(burst.CorrodedModels)),
	}

	for year := in.StartYear; year <= in.StartYear+in.Years; year++ {
		elapsed := float64(year - in.StartYear)
		grown := in.Defect.DepthMM + in.RadialMMPerYear*elapsed
		depth := math.Min(grown, depthCap)
		length := in.Defect.LengthMM + in.AxialMMPerYear*elapsed

		res, err := burst.Compute(in.Geometry, pipe.Defect{LengthMM: length, DepthMM: depth}, in.Material)
		if err != nil {
			return Projection{}, err
		}

		pt := Point{
			Year:        year,
			DepthMM:     depth,
			LengthMM:    length,
			Burst:       make(map[burst.Model]float64, len(burst.CorrodedModels)),
			ERF:         make(map[burst.Model]float64, len(burst.CorrodedModels)),
			DepthCapped: grown >= depthCap,
		}
		for i, m := range burst.CorrodedModels {
			p := res.Pressure(m)
			erf := in.OperatingMaxMPa / p
			pt.Burst[m] = p
			pt.ERF[m] = erf
			if i == 0 || erf > pt.CriticalERF {
				pt.CriticalERF = erf
				pt.CriticalModel = m
			}
			if _, failed := proj.FailureYears[m]; !failed && erf >= 1 {
				proj.FailureYears[m] = year
			}
		}
		if proj.CriticalFailureYear == nil && pt.CriticalERF >= 1 {
			y := year
			proj.CriticalFailureYear = &y
		}
		proj.Points = append(proj.Points, pt)
	}
	return proj, nil
}
