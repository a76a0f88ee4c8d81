package olson

import "math"

// maxPrealloc caps the up-front allocation; longer series grow by append.
const maxPrealloc = 1 << 16

// Params holds validated inputs of the Olson model. Only Validate builds one.
type Params struct {
	PreFireFuelLoad float64 `json:"pre_fire_fuel_load"` // t/ha, steady-state load
	DecayConstant   float64 `json:"decay_constant"`     // k
	FuelRemaining   float64 `json:"fuel_remaining"`     // p, proportion left after the last fire
	YearsSinceFire  int64   `json:"years_since_fire"`
}

type Sample struct {
	Year     int64   `json:"year"`
	FuelLoad float64 `json:"fuel_load"`
}

// Series is ordered by ascending year, starting at year 0.
type Series []Sample

type Result struct {
	Samples Series `json:"samples"`
}

// OffsetYears returns tx, the effective age at which the curve passes through
// the observed remaining proportion p.
func OffsetYears(k, p float64) float64 {
	return -math.Log(1-p) / k
}

// FuelLoad returns the predicted fuel load t years after the last fire.
// Inputs are not checked; k and p must be inside (0, 1).
func FuelLoad(in Params, t int64) float64 {
	return fuelLoadAt(in.PreFireFuelLoad, in.DecayConstant, OffsetYears(in.DecayConstant, in.FuelRemaining), t)
}

func fuelLoadAt(ss, k, tx float64, t int64) float64 {
	return ss * (1 - math.Exp(-k*(float64(t)+tx)))
}

// Calculate computes the fuel load for every year from 0 to YearsSinceFire inclusive.
func Calculate(in Params) Series {
	if in.YearsSinceFire < 0 || in.YearsSinceFire == math.MaxInt64 {
		return Series{}
	}
	tx := OffsetYears(in.DecayConstant, in.FuelRemaining)
	out := make(Series, 0, min(in.YearsSinceFire+1, maxPrealloc))
	for t := int64(0); t <= in.YearsSinceFire; t++ {
		out = append(out, Sample{
			Year:     t,
			FuelLoad: fuelLoadAt(in.PreFireFuelLoad, in.DecayConstant, tx, t),
		})
	}
	return out
}

// Years and FuelLoads split the series into plotting columns.
func (s Series) Years() []float64 {
	xs := make([]float64, len(s))
	for i, smp := range s {
		xs[i] = float64(smp.Year)
	}
	return xs
}

func (s Series) FuelLoads() []float64 {
	ys := make([]float64, len(s))
	for i, smp := range s {
		ys[i] = smp.FuelLoad
	}
	return ys
}
