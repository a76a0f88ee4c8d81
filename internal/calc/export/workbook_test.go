package export

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Olson/internal/calc/olson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	params := olson.Params{PreFireFuelLoad: 20.2, DecayConstant: 0.35, FuelRemaining: 0.5, YearsSinceFire: 10}
	series := olson.Calculate(params)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, params, series))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, SheetName, f.GetSheetName(0))
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, len(series)+1)
	assert.Equal(t, HeaderYear, rows[0][0])
	assert.Equal(t, HeaderFuelLoad, rows[0][1])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "10", rows[11][0])

	v, err := f.GetCellValue(SheetName, "E4")
	require.NoError(t, err)
	assert.Equal(t, "10", v)
}

func TestHandler_Workbook(t *testing.T) {
	h := &Handler{MaxYears: 10000}
	body := `{"pre_fire_fuel_load":"20.2","decay_constant":"0.35","fuel_remaining":"0.5","years_since_fire":"5"}`
	rec := httptest.NewRecorder()

	h.Workbook(rec, httptest.NewRequest(http.MethodPost, "/api/tools/olson/export", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fuel-curve.xlsx")
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestHandler_WorkbookRejectsInvalidValue(t *testing.T) {
	h := &Handler{MaxYears: 10000}
	body := `{"pre_fire_fuel_load":"abc","decay_constant":"0.35","fuel_remaining":"0.5","years_since_fire":"5"}`
	rec := httptest.NewRecorder()

	h.Workbook(rec, httptest.NewRequest(http.MethodPost, "/api/tools/olson/export", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
