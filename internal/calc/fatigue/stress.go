package fatigue

import (
	"math"

	"Fatih/internal/calc/pipe"
)

// MorrowOffsetMPa is added to UTS to give the true fracture strength used by
// the Morrow criterion.
const MorrowOffsetMPa = 345.0

// EnduranceRatio gives Se = EnduranceRatio * UTS.
const EnduranceRatio = 0.5

// PrincipalStresses of a thin-wall pipe under internal pressure, in MPa.
type PrincipalStresses struct {
	Hoop   float64 `json:"hoop"`
	Axial  float64 `json:"axial"`
	Radial float64 `json:"radial"`
}

// State is the cyclic stress state between the two operating pressures.
type State struct {
	Max         PrincipalStresses `json:"principal_max"`
	Min         PrincipalStresses `json:"principal_min"`
	VonMisesMax float64           `json:"sigma_vm_max"`
	VonMisesMin float64           `json:"sigma_vm_min"`
	Alternating float64           `json:"sigma_a"`
	Mean        float64           `json:"sigma_m"`
	Endurance   float64           `json:"se"`
	Fracture    float64           `json:"sigma_f"`
}

// Principal uses the thin-wall approximation: radial stress is zero.
func Principal(p float64, g pipe.Geometry) PrincipalStresses {
	return PrincipalStresses{
		Hoop:   p * g.DiameterMM / (2 * g.ThicknessMM),
		Axial:  p * g.DiameterMM / (4 * g.ThicknessMM),
		Radial: 0,
	}
}

func VonMises(s PrincipalStresses) float64 {
	p1, p2, p3 := s.Hoop, s.Axial, s.Radial
	return (1 / math.Sqrt(2)) * math.Sqrt((p1-p2)*(p1-p2)+(p2-p3)*(p2-p3)+(p3-p1)*(p3-p1))
}

// ComputeCyclicStress derives the alternating and mean von Mises stress for
// the pressure range. Se and sigma_f come from the material.
func ComputeCyclicStress(g pipe.Geometry, p pipe.Pressure, m pipe.Material) (State, error) {
	if err := g.Validate(); err != nil {
		return State{}, err
	}
	if err := p.Validate(); err != nil {
		return State{}, err
	}
	if err := m.Validate(); err != nil {
		return State{}, err
	}

	smax := Principal(p.MaxMPa, g)
	smin := Principal(p.MinMPa, g)
	vmMax := VonMises(smax)
	vmMin := VonMises(smin)

	return State{
		Max:         smax,
		Min:         smin,
		VonMisesMax: vmMax,
		VonMisesMin: vmMin,
		Alternating: (vmMax - vmMin) / 2,
		Mean:        (vmMax + vmMin) / 2,
		Endurance:   EnduranceRatio * m.UTSMPa,
		Fracture:    m.UTSMPa + MorrowOffsetMPa,
	}, nil
}
