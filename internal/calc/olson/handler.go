package olson

import (
	"encoding/json"
	"net/http"

	"Olson/internal/log"
)

const invalidInputPrefix = "Could not calculate fuel load as an invalid value was given.\n\n - "

// UserMessage formats a validation failure for display in the form.
func UserMessage(err error) string {
	return invalidInputPrefix + err.Error()
}

// Handler serves the calculation endpoints. Defaults seeds the form only.
type Handler struct {
	Defaults RawInput
	MaxYears int64
}

func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Defaults)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	params, ok := DecodeAndValidate(w, r, h.MaxYears)
	if !ok {
		return
	}
	res := Result{Samples: Calculate(params)}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Errorw("encode calc response", "error", err)
	}
}

// ValidateWithin is Validate followed by CheckYears.
func ValidateWithin(raw RawInput, maxYears int64) (Params, error) {
	params, err := Validate(raw)
	if err != nil {
		return Params{}, err
	}
	if err := CheckYears(params, maxYears); err != nil {
		return Params{}, err
	}
	return params, nil
}

// DecodeAndValidate reads a RawInput body and validates it. On failure it has
// already written the response.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, maxYears int64) (Params, bool) {
	var input RawInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Params{}, false
	}
	params, err := ValidateWithin(input, maxYears)
	if err != nil {
		log.Debugw("rejected olson input", "path", r.URL.Path, "reason", err.Error())
		http.Error(w, UserMessage(err), http.StatusBadRequest)
		return Params{}, false
	}
	return params, true
}
