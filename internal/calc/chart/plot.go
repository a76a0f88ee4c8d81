package chart

import (
	"fmt"
	"math"

	"Olson/internal/calc/olson"

	"gonum.org/v1/gonum/floats"
)

const (
	DocumentTitle = "Olson fuel load calculator"
	Title         = "Olson Fuel Accumulation Curve"
	XLabel        = "Time since fire (years)"
	YLabel        = "Predicted fuel load (t/ha)"

	tickTarget = 6
)

// Plot is the renderer-independent layout of the fuel curve. A plot built
// from an empty series has labels only: no ticks and no line.
type Plot struct {
	Title  string
	XLabel string
	YLabel string

	X []float64
	Y []float64

	XTicks []float64
	YTicks []float64

	XMin, XMax float64
	YMin, YMax float64
}

func NewPlot(s olson.Series) Plot {
	p := Plot{
		Title:  Title,
		XLabel: XLabel,
		YLabel: YLabel,
		XMin:   0,
		XMax:   1,
		YMin:   0,
		YMax:   1,
	}
	if len(s) == 0 {
		return p
	}

	p.X = s.Years()
	p.Y = s.FuelLoads()
	p.XTicks = niceTicks(floats.Min(p.X), floats.Max(p.X), tickTarget)
	p.YTicks = niceTicks(floats.Min(p.Y), floats.Max(p.Y), tickTarget)
	p.XMin, p.XMax = p.XTicks[0], p.XTicks[len(p.XTicks)-1]
	p.YMin, p.YMax = p.YTicks[0], p.YTicks[len(p.YTicks)-1]
	return p
}

// Empty reports whether the plot has no line to draw.
func (p Plot) Empty() bool {
	return len(p.X) == 0
}

// niceTicks covers [lo, hi] with evenly spaced ticks on 1/2/5 multiples.
func niceTicks(lo, hi float64, n int) []float64 {
	if hi <= lo {
		hi = lo + 1
	}
	span := niceNum(hi-lo, false)
	step := niceNum(span/float64(n-1), true)
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	count := int(math.Round((end-start)/step)) + 1

	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = start + float64(i)*step
	}
	return ticks
}

func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case round && f < 1.5:
		nf = 1
	case round && f < 3:
		nf = 2
	case round && f < 7:
		nf = 5
	case round:
		nf = 10
	case f <= 1:
		nf = 1
	case f <= 2:
		nf = 2
	case f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

// tickLabel prints v with just enough decimals for the tick spacing.
func tickLabel(v float64, ticks []float64) string {
	dec := 0
	if len(ticks) > 1 {
		step := ticks[1] - ticks[0]
		if d := -int(math.Floor(math.Log10(step))); d > 0 {
			dec = d
		}
	}
	return fmt.Sprintf("%.*f", dec, v)
}
