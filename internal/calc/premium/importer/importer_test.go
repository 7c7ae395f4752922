package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"base", "10", "200", "1000", "50", "2", "300", "400", "10", "5"},
		{},
		{"comma", "10", "200", "1000", "50", "2,5", "300", "400", "10", "5"},
		{"short", "10", "200"},
		{"bad", "10", "x", "1000", "50", "2", "300", "400", "10", "5"},
		{"nan", "10", "200", "1000", "50", "NaN", "300", "400", "10", "5"},
		{"inf", "10", "200", "1000", "50", "2", "300", "Inf", "10", "5"},
	}
	cfgs, errs := ParseRows(rows, 2)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "base", cfgs[0].Name)
	assert.Equal(t, 10.0, cfgs[0].Geometry.ThicknessMM)
	assert.Equal(t, 2.0, cfgs[0].Defect.DepthMM)
	assert.Equal(t, 5.0, cfgs[0].Pressure.MinMPa)
	assert.Equal(t, 2.5, cfgs[1].Defect.DepthMM)

	require.Len(t, errs, 4)
	assert.Equal(t, 5, errs[0].Row)
	assert.Equal(t, 6, errs[1].Row)
	assert.Contains(t, errs[1].Error, "column D")
	assert.Equal(t, 7, errs[2].Row)
	assert.Contains(t, errs[2].Error, "column Dc")
	assert.Equal(t, 8, errs[3].Row)
	assert.Contains(t, errs[3].Error, "column UTS")
}

func TestReadWorkbook(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A", 10, 200, 1000, 50, 2, 300, 400, 10, 5},
		{"B", 12.7, 508, 1000, 120, 4.5, 358, 455, 8, 2},
	})
	cfgs, errs, err := ReadWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, cfgs, 2)
	assert.Equal(t, "B", cfgs[1].Name)
	assert.Equal(t, 508.0, cfgs[1].Geometry.DiameterMM)
	assert.Equal(t, 120.0, cfgs[1].Defect.LengthMM)

	_, _, err = ReadWorkbook(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestHandler_Configurations(t *testing.T) {
	buf := workbook(t, [][]any{
		{"A", 10, 200, 1000, 50, 2, 300, 400, 10, 5},
		{"through wall", 10, 200, 1000, 50, 10, 300, 400, 10, 5},
		{"broken", 10, "x"},
	})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "configs.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/compare/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h := &Handler{Log: zap.NewNop(), Workers: 2, MaxItems: 10, MaxUploadBytes: 1 << 20}
	h.Configurations(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Skipped, 1)
	assert.Equal(t, 4, got.Skipped[0].Row)

	w = httptest.NewRecorder()
	h.Configurations(w, httptest.NewRequest(http.MethodPost, "/api/user/tools/compare/import", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
