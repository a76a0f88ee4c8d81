package olson

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawInput is the form text as typed by the user.
type RawInput struct {
	PreFireFuelLoad string `json:"pre_fire_fuel_load"`
	DecayConstant   string `json:"decay_constant"`
	FuelRemaining   string `json:"fuel_remaining"`
	YearsSinceFire  string `json:"years_since_fire"`
}

const (
	FieldPreFireFuelLoad = "pre_fire_fuel_load"
	FieldDecayConstant   = "decay_constant"
	FieldFuelRemaining   = "fuel_remaining"
	FieldYearsSinceFire  = "years_since_fire"
)

// ParseError reports field text that is not a number of the expected kind.
type ParseError struct {
	Field   string
	Value   string
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// RangeError reports a parsed value outside its allowed bounds.
type RangeError struct {
	Field   string
	Message string
}

func (e *RangeError) Error() string {
	return e.Message
}

type rangeRule struct {
	field string
	tag   string
	msg   string
}

// Checked in this order; the first failure wins.
var rangeRules = []rangeRule{
	{FieldPreFireFuelLoad, "gt=0", "Pre-fire fuel load must be a positive number."},
	{FieldYearsSinceFire, "gt=0", "Time must be a positive integer."},
	{FieldDecayConstant, "gt=0,lt=1", "Decay constant must be between 0 and 1."},
	{FieldFuelRemaining, "gt=0,lt=1", "Proportion of remaining fuel must be between 0 and 1."},
}

var validate = validator.New()

// Validate parses the raw form values and checks their bounds. The returned
// error is a *ParseError or a *RangeError; its message is meant for the user.
func Validate(raw RawInput) (Params, error) {
	ss, err := parseFloat(FieldPreFireFuelLoad, "Pre-fire fuel load", raw.PreFireFuelLoad)
	if err != nil {
		return Params{}, err
	}
	k, err := parseFloat(FieldDecayConstant, "Decay constant", raw.DecayConstant)
	if err != nil {
		return Params{}, err
	}
	p, err := parseFloat(FieldFuelRemaining, "Proportion of remaining fuel", raw.FuelRemaining)
	if err != nil {
		return Params{}, err
	}
	years, err := parseInt(FieldYearsSinceFire, "Time", raw.YearsSinceFire)
	if err != nil {
		return Params{}, err
	}

	values := map[string]any{
		FieldPreFireFuelLoad: ss,
		FieldYearsSinceFire:  years,
		FieldDecayConstant:   k,
		FieldFuelRemaining:   p,
	}
	for _, rule := range rangeRules {
		if err := validate.Var(values[rule.field], rule.tag); err != nil {
			return Params{}, &RangeError{Field: rule.field, Message: rule.msg}
		}
	}

	return Params{
		PreFireFuelLoad: ss,
		DecayConstant:   k,
		FuelRemaining:   p,
		YearsSinceFire:  years,
	}, nil
}

// CheckYears rejects horizons longer than maxYears. It runs after Validate so
// the series a caller asks for stays bounded.
func CheckYears(in Params, maxYears int64) error {
	if in.YearsSinceFire > maxYears {
		return &RangeError{
			Field:   FieldYearsSinceFire,
			Message: fmt.Sprintf("Time must be at most %d years.", maxYears),
		}
	}
	return nil
}

func parseFloat(field, label, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Field: field, Value: s, Message: fmt.Sprintf("%s must be a number, got %q.", label, s)}
	}
	return v, nil
}

func parseInt(field, label, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, Message: fmt.Sprintf("%s must be a whole number of years, got %q.", label, s)}
	}
	return v, nil
}
