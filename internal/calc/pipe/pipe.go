package pipe

import (
	"fmt"
	"math"
)

// Geometry is the pipe section. Lengths in mm.
type Geometry struct {
	ThicknessMM float64 `json:"pipe_thickness"`
	DiameterMM  float64 `json:"pipe_diameter"`
	LengthMM    float64 `json:"pipe_length"` // recorded only, no formula uses it
}

// Defect is a single axial corrosion patch.
type Defect struct {
	LengthMM float64 `json:"corrosion_length"`
	DepthMM  float64 `json:"corrosion_depth"`
}

// Material holds the strength properties in MPa. UTS >= Sy is expected but not enforced.
type Material struct {
	YieldMPa float64 `json:"yield_stress"`
	UTSMPa   float64 `json:"uts"`
}

// Pressure is the operating pressure range in MPa.
type Pressure struct {
	MaxMPa float64 `json:"max_pressure"`
	MinMPa float64 `json:"min_pressure"`
}

// Positive reports whether v is a finite number above zero. NaN fails.
func Positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// NonNegative reports whether v is a finite number at or above zero. NaN fails.
func NonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func (g Geometry) Validate() error {
	if !Positive(g.ThicknessMM) {
		return &InvalidGeometryError{Field: "pipe_thickness", Value: g.ThicknessMM}
	}
	if !Positive(g.DiameterMM) {
		return &InvalidGeometryError{Field: "pipe_diameter", Value: g.DiameterMM}
	}
	return nil
}

// Validate checks the defect against the wall it sits in.
func (d Defect) Validate(g Geometry) error {
	if !NonNegative(d.LengthMM) {
		return &DomainError{Field: "corrosion_length", Value: d.LengthMM, Reason: "must be a finite non-negative number"}
	}
	if !NonNegative(d.DepthMM) {
		return &DomainError{Field: "corrosion_depth", Value: d.DepthMM, Reason: "must be a finite non-negative number"}
	}
	if d.DepthMM >= g.ThicknessMM {
		return &DomainError{
			Field:  "corrosion_depth",
			Value:  d.DepthMM,
			Reason: fmt.Sprintf("must be less than wall thickness %g mm", g.ThicknessMM),
		}
	}
	return nil
}

func (m Material) Validate() error {
	if !Positive(m.UTSMPa) {
		return &DomainError{Field: "uts", Value: m.UTSMPa, Reason: "must be a finite positive number"}
	}
	if !Positive(m.YieldMPa) {
		return &DomainError{Field: "yield_stress", Value: m.YieldMPa, Reason: "must be a finite positive number"}
	}
	return nil
}

// Validate rejects negative pressures and an inverted range. An inverted
// range would give a negative alternating stress amplitude.
func (p Pressure) Validate() error {
	if !NonNegative(p.MaxMPa) {
		return &DomainError{Field: "max_pressure", Value: p.MaxMPa, Reason: "must be a finite non-negative number"}
	}
	if !NonNegative(p.MinMPa) {
		return &DomainError{Field: "min_pressure", Value: p.MinMPa, Reason: "must be a finite non-negative number"}
	}
	if p.MinMPa > p.MaxMPa {
		return &DomainError{
			Field:  "min_pressure",
			Value:  p.MinMPa,
			Reason: fmt.Sprintf("must not exceed max_pressure %g MPa", p.MaxMPa),
		}
	}
	return nil
}
