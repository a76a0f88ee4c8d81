package chart

import (
	"bytes"
	"net/http"

	"Olson/internal/calc/olson"
	"Olson/internal/log"
)

type Handler struct {
	MaxYears int64
}

// Empty serves the initial chart shown before anything is calculated.
func (h *Handler) Empty(w http.ResponseWriter, r *http.Request) {
	h.write(w, NewPlot(nil))
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	params, ok := olson.DecodeAndValidate(w, r, h.MaxYears)
	if !ok {
		return
	}
	h.write(w, NewPlot(olson.Calculate(params)))
}

func (h *Handler) write(w http.ResponseWriter, p Plot) {
	var buf bytes.Buffer
	if err := Render(&buf, p); err != nil {
		log.Errorw("render chart", "error", err)
		http.Error(w, "Chart generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=\"fuel-curve.pdf\"")
	w.Write(buf.Bytes())
}
