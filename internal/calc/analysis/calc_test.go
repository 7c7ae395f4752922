package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Fatih/internal/calc/fatigue"
	"Fatih/internal/calc/pipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const refJSON = `{
	"pipe_thickness": 10, "pipe_diameter": 200, "pipe_length": 1000,
	"corrosion_length": 50, "corrosion_depth": 2,
	"yield_stress": 300, "uts": 400,
	"max_pressure": 10, "min_pressure": 5
}`

func refInput() Input {
	return Input{
		Geometry: pipe.Geometry{ThicknessMM: 10, DiameterMM: 200, LengthMM: 1000},
		Defect:   pipe.Defect{LengthMM: 50, DepthMM: 2},
		Material: pipe.Material{YieldMPa: 300, UTSMPa: 400},
		Pressure: pipe.Pressure{MaxMPa: 10, MinMPa: 5},
	}
}

func TestRun(t *testing.T) {
	res, err := Run(refInput())
	require.NoError(t, err)

	assert.Equal(t, 40.0, res.Burst.Tresca)
	assert.InEpsilon(t, 38.27529619925565, res.Burst.ASMEB31G, 1e-9)
	assert.InEpsilon(t, 21.650635094610966, res.Stress.Alternating, 1e-9)
	r, ok := res.Fatigue.Ratio(fatigue.Goodman)
	require.True(t, ok)
	assert.InEpsilon(t, 0.27063293868263705, r, 1e-9)
	assert.True(t, res.Fatigue.AllSafe)
}

func TestInput_FlatJSON(t *testing.T) {
	var in Input
	require.NoError(t, json.Unmarshal([]byte(refJSON), &in))
	assert.Equal(t, refInput(), in)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	in := refInput()
	in.Geometry.ThicknessMM = -1
	res, err := Run(in)
	var ge *pipe.InvalidGeometryError
	require.True(t, errors.As(err, &ge))
	assert.Contains(t, err.Error(), "burst pressure")
	assert.Equal(t, Result{}, res, "no partial results")

	in = refInput()
	in.Pressure = pipe.Pressure{MaxMPa: 5, MinMPa: 10}
	res, err = Run(in)
	var de *pipe.DomainError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), "cyclic stress")
	assert.Equal(t, Result{}, res)
}

func TestHandler_Calc(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	w := httptest.NewRecorder()
	h.Calc(w, httptest.NewRequest(http.MethodPost, "/api/user/tools/analysis/calc", strings.NewReader(refJSON)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 32.0, got.Burst.PCORRC)
	assert.Len(t, got.Fatigue.Criteria, 5)

	bad := strings.Replace(refJSON, `"corrosion_depth": 2`, `"corrosion_depth": 12`, 1)
	w = httptest.NewRecorder()
	h.Calc(w, httptest.NewRequest(http.MethodPost, "/api/user/tools/analysis/calc", strings.NewReader(bad)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "corrosion_depth")
}
