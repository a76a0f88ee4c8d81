package chart

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// Page geometry in mm (A5 landscape).
const (
	marginLeft   = 28.0
	marginRight  = 12.0
	marginTop    = 20.0
	marginBottom = 24.0
	tickLen      = 1.5
)

// Render writes the plot as a single-page PDF.
func Render(w io.Writer, p Plot) error {
	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetTitle(DocumentTitle, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	left, top := marginLeft, marginTop
	width := pageW - marginLeft - marginRight
	height := pageH - marginTop - marginBottom
	bottom := top + height

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Rect(left, top, width, height, "D")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(left, 8)
	pdf.CellFormat(width, 8, p.Title, "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(left, bottom+10)
	pdf.CellFormat(width, 6, p.XLabel, "", 0, "C", false, 0, "")

	labelW := pdf.GetStringWidth(p.YLabel)
	lx, ly := 9.0, top+height/2+labelW/2
	pdf.TransformBegin()
	pdf.TransformRotate(90, lx, ly)
	pdf.Text(lx, ly, p.YLabel)
	pdf.TransformEnd()

	if p.Empty() {
		return output(pdf, w)
	}

	px := func(x float64) float64 { return left + (x-p.XMin)/(p.XMax-p.XMin)*width }
	py := func(y float64) float64 { return bottom - (y-p.YMin)/(p.YMax-p.YMin)*height }

	pdf.SetFont("Helvetica", "", 8)
	for _, t := range p.XTicks {
		x := px(t)
		pdf.Line(x, bottom, x, bottom+tickLen)
		pdf.SetXY(x-10, bottom+tickLen+0.5)
		pdf.CellFormat(20, 4, tickLabel(t, p.XTicks), "", 0, "C", false, 0, "")
	}
	for _, t := range p.YTicks {
		y := py(t)
		pdf.Line(left-tickLen, y, left, y)
		pdf.SetXY(left-tickLen-21, y-2)
		pdf.CellFormat(20, 4, tickLabel(t, p.YTicks), "", 0, "R", false, 0, "")
	}

	// matplotlib's default line colour
	pdf.SetDrawColor(31, 119, 180)
	pdf.SetLineWidth(0.5)
	for i := 1; i < len(p.X); i++ {
		pdf.Line(px(p.X[i-1]), py(p.Y[i-1]), px(p.X[i]), py(p.Y[i]))
	}

	return output(pdf, w)
}

func output(pdf *gofpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write chart pdf: %w", err)
	}
	return nil
}
