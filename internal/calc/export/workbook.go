package export

import (
	"fmt"
	"io"

	"Olson/internal/calc/chart"
	"Olson/internal/calc/olson"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Fuel load"

	HeaderYear     = "Year"
	HeaderFuelLoad = "Fuel load (t/ha)"
)

// WriteWorkbook writes the parameters, the series and a line chart of it as xlsx.
func WriteWorkbook(w io.Writer, in olson.Params, s olson.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{HeaderYear, HeaderFuelLoad}); err != nil {
		return err
	}
	for i, smp := range s {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{smp.Year, smp.FuelLoad}); err != nil {
			return err
		}
	}

	params := [][]interface{}{
		{"Pre-fire fuel load (t/ha)", in.PreFireFuelLoad},
		{"Decay constant", in.DecayConstant},
		{"Fuel remaining after last fire", in.FuelRemaining},
		{"Years since last fire", in.YearsSinceFire},
		{"Effective age offset tx (years)", olson.OffsetYears(in.DecayConstant, in.FuelRemaining)},
	}
	for i, row := range params {
		cell, err := excelize.CoordinatesToCellName(4, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}

	if len(s) > 0 {
		last := len(s) + 1
		if err := f.AddChart(SheetName, "D8", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$B$1", SheetName),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetName, last),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", SheetName, last),
			}},
			Title:  []excelize.RichTextRun{{Text: chart.Title}},
			XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: chart.XLabel}}},
			YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: chart.YLabel}}},
			Legend: excelize.ChartLegend{Position: "none"},
		}); err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: chart.DocumentTitle}); err != nil {
		return err
	}
	return f.Write(w)
}
