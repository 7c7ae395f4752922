package burst

import (
	"math"

	"Fatih/internal/calc/pipe"
)

type Model string

const (
	ModelVonMises Model = "von_mises"
	ModelTresca   Model = "tresca"
	ModelASMEB31G Model = "asme_b31g"
	ModelDNV      Model = "dnv"
	ModelPCORRC   Model = "pcorrc"
)

// Models lists every burst model in report order.
var Models = []Model{ModelVonMises, ModelTresca, ModelASMEB31G, ModelDNV, ModelPCORRC}

// CorrodedModels are the models that account for the defect.
var CorrodedModels = []Model{ModelASMEB31G, ModelDNV, ModelPCORRC}

func (m Model) Label() string {
	switch m {
	case ModelVonMises:
		return "Von Mises"
	case ModelTresca:
		return "Tresca"
	case ModelASMEB31G:
		return "ASME B31G"
	case ModelDNV:
		return "DNV-RP-F101"
	case ModelPCORRC:
		return "PCORRC"
	}
	return string(m)
}

type Input struct {
	pipe.Geometry
	pipe.Defect
	pipe.Material
}

// Result holds burst pressures in MPa.
type Result struct {
	VonMises float64 `json:"von_mises"`
	Tresca   float64 `json:"tresca"`
	ASMEB31G float64 `json:"asme_b31g"`
	DNV      float64 `json:"dnv"`
	PCORRC   float64 `json:"pcorrc"`
}

func (r Result) Pressure(m Model) float64 {
	switch m {
	case ModelVonMises:
		return r.VonMises
	case ModelTresca:
		return r.Tresca
	case ModelASMEB31G:
		return r.ASMEB31G
	case ModelDNV:
		return r.DNV
	case ModelPCORRC:
		return r.PCORRC
	}
	return math.NaN()
}

func Calculate(in Input) (Result, error) {
	return Compute(in.Geometry, in.Defect, in.Material)
}

// Compute returns intact and corroded burst pressures for one defect.
func Compute(g pipe.Geometry, d pipe.Defect, m pipe.Material) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, err
	}
	// DNV divides by D - t.
	if g.DiameterMM <= g.ThicknessMM {
		return Result{}, &pipe.DomainError{Field: "pipe_diameter", Value: g.DiameterMM, Reason: "must exceed wall thickness"}
	}
	if err := d.Validate(g); err != nil {
		return Result{}, err
	}
	if err := m.Validate(); err != nil {
		return Result{}, err
	}

	t, D, uts := g.ThicknessMM, g.DiameterMM, m.UTSMPa
	Lc, Dc := d.LengthMM, d.DepthMM

	// Intact pipe
	pvm := (4 * t * uts) / (math.Sqrt(3) * D)
	ptresca := (2 * t * uts) / D

	// ASME B31G, short vs long defect
	M := FoliasFactor(Lc, D, t)
	var pasme float64
	if Lc <= ShortDefectLimit(D, t) {
		pasme = (2 * t * uts / D) * ((1 - (2.0/3.0)*(Dc/t)) / (1 - (2.0/3.0)*(Dc/t)/M))
	} else {
		pasme = (2 * t * uts / D) * (1 - Dc/t)
	}

	Q := DNVLengthFactor(Lc, D, t)
	pdnv := (2 * uts * t / (D - t)) * ((1 - Dc/t) / (1 - Dc/(t*Q)))
	ppcorrc := (2 * t * uts / D) * (1 - Dc/t)

	return Result{
		VonMises: pvm,
		Tresca:   ptresca,
		ASMEB31G: pasme,
		DNV:      pdnv,
		PCORRC:   ppcorrc,
	}, nil
}

// FoliasFactor is the bulging factor M = sqrt(1 + 0.8 Lc^2/(D t)).
func FoliasFactor(Lc, D, t float64) float64 {
	return math.Sqrt(1 + 0.8*(Lc*Lc/(D*t)))
}

// DNVLengthFactor is Q = sqrt(1 + 0.31 Lc^2/(D t)).
func DNVLengthFactor(Lc, D, t float64) float64 {
	return math.Sqrt(1 + 0.31*(Lc*Lc)/(D*t))
}

// ShortDefectLimit is sqrt(20 D t). Defects up to and including it use the
// short-defect B31G formula.
func ShortDefectLimit(D, t float64) float64 {
	return math.Sqrt(20 * D * t)
}
