package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Fatih/internal/calc/analysis"
	"Fatih/internal/calc/pipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func config(name string, depth float64) Configuration {
	return Configuration{
		Name: name,
		Input: analysis.Input{
			Geometry: pipe.Geometry{ThicknessMM: 10, DiameterMM: 200, LengthMM: 1000},
			Defect:   pipe.Defect{LengthMM: 50, DepthMM: depth},
			Material: pipe.Material{YieldMPa: 300, UTSMPa: 400},
			Pressure: pipe.Pressure{MaxMPa: 10, MinMPa: 5},
		},
	}
}

func TestCompare_KeepsOrderAndMatchesSingleRuns(t *testing.T) {
	var in CompareInput
	for i := 0; i < 25; i++ {
		in.Items = append(in.Items, config(fmt.Sprintf("cfg-%02d", i), float64(i%9)))
	}

	res, err := Compare(context.Background(), in, 4)
	require.NoError(t, err)
	require.Len(t, res.Results, len(in.Items))
	assert.Equal(t, 0, res.Failed)

	for i, item := range res.Results {
		assert.Equal(t, in.Items[i].Name, item.Name)
		require.NotNil(t, item.Result)
		want, err := analysis.Run(in.Items[i].Input)
		require.NoError(t, err)
		assert.Equal(t, want, *item.Result)
	}
}

func TestCompare_FailureIsolated(t *testing.T) {
	in := CompareInput{Items: []Configuration{
		config("ok", 2),
		config("", 11),
		config("also ok", 4),
	}}
	res, err := Compare(context.Background(), in, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)

	assert.NotNil(t, res.Results[0].Result)
	assert.Equal(t, "Configuration 2", res.Results[1].Name)
	assert.Nil(t, res.Results[1].Result)
	assert.Contains(t, res.Results[1].Error, "corrosion_depth")
	assert.NotNil(t, res.Results[2].Result)
}

func TestCompare_Errors(t *testing.T) {
	_, err := Compare(context.Background(), CompareInput{}, 2)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Compare(ctx, CompareInput{Items: []Configuration{config("a", 1), config("b", 2)}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandler_Compare(t *testing.T) {
	h := &Handler{Log: zap.NewNop(), Workers: 2, MaxItems: 2}

	body, _ := json.Marshal(CompareInput{Items: []Configuration{config("a", 1), config("b", 3)}})
	w := httptest.NewRecorder()
	h.Compare(w, httptest.NewRequest(http.MethodPost, "/api/user/tools/compare/calc", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var got CompareResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Results, 2)
	assert.Greater(t, got.Results[0].Result.Burst.PCORRC, got.Results[1].Result.Burst.PCORRC)

	body, _ = json.Marshal(CompareInput{Items: []Configuration{config("a", 1), config("b", 2), config("c", 3)}})
	w = httptest.NewRecorder()
	h.Compare(w, httptest.NewRequest(http.MethodPost, "/api/user/tools/compare/calc", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
