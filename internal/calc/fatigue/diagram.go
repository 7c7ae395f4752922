package fatigue

import (
	"fmt"

	"Fatih/internal/calc/pipe"
)

const (
	DefaultDiagramPoints = 100
	// mean stress axis runs to this multiple of UTS
	diagramSpan = 1.1
)

type Point struct {
	Mean        float64 `json:"sigma_m"`
	Alternating float64 `json:"sigma_a"`
}

type Series struct {
	Criterion Criterion `json:"criterion"`
	Points    []Point   `json:"points"`
}

// Diagram is the Haigh diagram data: one envelope per criterion plus the
// operating point.
type Diagram struct {
	Envelopes []Series `json:"envelopes"`
	Operating Point    `json:"operating"`
	Endurance float64  `json:"se"`
	UTS       float64  `json:"uts"`
	Yield     float64  `json:"yield_stress"`
}

// BuildDiagram samples each envelope at n evenly spaced mean stresses in
// [0, 1.1*UTS]. Samples where an envelope is undefined are left out.
func BuildDiagram(s State, m pipe.Material, n int) (Diagram, error) {
	if err := m.Validate(); err != nil {
		return Diagram{}, err
	}
	if n < 2 {
		return Diagram{}, fmt.Errorf("diagram needs at least 2 points, got %d", n)
	}

	stop := m.UTSMPa * diagramSpan
	step := stop / float64(n-1)

	d := Diagram{
		Envelopes: make([]Series, 0, len(table)),
		Operating: Point{Mean: s.Mean, Alternating: s.Alternating},
		Endurance: s.Endurance,
		UTS:       m.UTSMPa,
		Yield:     m.YieldMPa,
	}
	for _, def := range table {
		series := Series{Criterion: def.criterion, Points: make([]Point, 0, n)}
		for i := 0; i < n; i++ {
			sm := float64(i) * step
			sa, ok := def.envelope(sm, s, m)
			if !ok {
				continue
			}
			series.Points = append(series.Points, Point{Mean: sm, Alternating: sa})
		}
		d.Envelopes = append(d.Envelopes, series)
	}
	return d, nil
}
