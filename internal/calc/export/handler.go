package export

import (
	"bytes"
	"net/http"

	"Olson/internal/calc/olson"
	"Olson/internal/log"
)

type Handler struct {
	MaxYears int64
}

func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	params, ok := olson.DecodeAndValidate(w, r, h.MaxYears)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, params, olson.Calculate(params)); err != nil {
		log.Errorw("write workbook", "error", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"fuel-curve.xlsx\"")
	w.Write(buf.Bytes())
}
