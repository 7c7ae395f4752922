package fatigue

import (
	"fmt"
	"math"

	"Fatih/internal/calc/pipe"
)

type Criterion string

const (
	Goodman      Criterion = "Goodman"
	Soderberg    Criterion = "Soderberg"
	Gerber       Criterion = "Gerber"
	Morrow       Criterion = "Morrow"
	ASMEElliptic Criterion = "ASME-Elliptic"
)

type criterionDef struct {
	criterion Criterion
	equation  string
	ratio     func(s State, m pipe.Material) float64
	// envelope is the allowable alternating stress at mean stress sm, false
	// where the envelope is undefined.
	envelope func(sm float64, s State, m pipe.Material) (float64, bool)
}

var table = []criterionDef{
	{
		criterion: Goodman,
		equation:  "σa/Se + σm/UTS = 1",
		ratio: func(s State, m pipe.Material) float64 {
			return s.Alternating/s.Endurance + s.Mean/m.UTSMPa
		},
		envelope: func(sm float64, s State, m pipe.Material) (float64, bool) {
			return s.Endurance * (1 - sm/m.UTSMPa), true
		},
	},
	{
		criterion: Soderberg,
		equation:  "σa/Se + σm/Sy = 1",
		ratio: func(s State, m pipe.Material) float64 {
			return s.Alternating/s.Endurance + s.Mean/m.YieldMPa
		},
		envelope: func(sm float64, s State, m pipe.Material) (float64, bool) {
			return s.Endurance * (1 - sm/m.YieldMPa), true
		},
	},
	{
		criterion: Gerber,
		equation:  "σa/Se + (σm/UTS)² = 1",
		ratio: func(s State, m pipe.Material) float64 {
			r := s.Mean / m.UTSMPa
			return s.Alternating/s.Endurance + r*r
		},
		envelope: func(sm float64, s State, m pipe.Material) (float64, bool) {
			r := sm / m.UTSMPa
			return s.Endurance * (1 - r*r), true
		},
	},
	{
		criterion: Morrow,
		equation:  "σa/Se + σm/(UTS+345) = 1",
		ratio: func(s State, m pipe.Material) float64 {
			return s.Alternating/s.Endurance + s.Mean/s.Fracture
		},
		envelope: func(sm float64, s State, m pipe.Material) (float64, bool) {
			return s.Endurance * (1 - sm/s.Fracture), true
		},
	},
	{
		criterion: ASMEElliptic,
		equation:  "(σa/Se)² + (σm/Sy)² = 1",
		ratio: func(s State, m pipe.Material) float64 {
			a := s.Alternating / s.Endurance
			b := s.Mean / m.YieldMPa
			return math.Sqrt(a*a + b*b)
		},
		envelope: func(sm float64, s State, m pipe.Material) (float64, bool) {
			r := sm / m.YieldMPa
			if r > 1 {
				return 0, false
			}
			return s.Endurance * math.Sqrt(1-r*r), true
		},
	},
}

// Criteria lists every criterion in report order.
func Criteria() []Criterion {
	out := make([]Criterion, len(table))
	for i, d := range table {
		out[i] = d.criterion
	}
	return out
}

func (c Criterion) Equation() string {
	for _, d := range table {
		if d.criterion == c {
			return d.equation
		}
	}
	return ""
}

// Safe reports whether a criterion ratio lies on or inside the failure envelope.
func Safe(ratio float64) bool {
	return ratio <= 1
}

type Assessment struct {
	Criterion Criterion `json:"criterion"`
	Equation  string    `json:"equation"`
	Ratio     float64   `json:"ratio"`
	Safe      bool      `json:"safe"`
}

type Result struct {
	Criteria []Assessment `json:"criteria"`
	AllSafe  bool         `json:"all_safe"`
}

// Ratio returns the ratio for c, false if c was not evaluated.
func (r Result) Ratio(c Criterion) (float64, bool) {
	for _, a := range r.Criteria {
		if a.Criterion == c {
			return a.Ratio, true
		}
	}
	return 0, false
}

// Evaluate applies every criterion to the cyclic stress state.
func Evaluate(s State, m pipe.Material) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	if s.Endurance <= 0 {
		return Result{}, &pipe.DomainError{Field: "se", Value: s.Endurance, Reason: "endurance limit must be positive"}
	}
	if s.Fracture <= 0 {
		return Result{}, &pipe.DomainError{Field: "sigma_f", Value: s.Fracture, Reason: "fracture strength must be positive"}
	}

	res := Result{Criteria: make([]Assessment, 0, len(table)), AllSafe: true}
	for _, d := range table {
		ratio := d.ratio(s, m)
		if math.IsNaN(ratio) {
			return Result{}, fmt.Errorf("%s ratio is not a number", d.criterion)
		}
		safe := Safe(ratio)
		res.AllSafe = res.AllSafe && safe
		res.Criteria = append(res.Criteria, Assessment{
			Criterion: d.criterion,
			Equation:  d.equation,
			Ratio:     ratio,
			Safe:      safe,
		})
	}
	return res, nil
}
