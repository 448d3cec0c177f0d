package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetParameters   = "Parameters"
	SheetCountries    = "Countries"
	SheetFinancials   = "Financials"
	SheetObservations = "Observations"
)

// WriteWorkbook writes parameters, country stats, financial results and raw
// observations into one XLSX file.
func WriteWorkbook(path string, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetParameters); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}
	for _, name := range []string{SheetCountries, SheetFinancials, SheetObservations} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("%w: failed to add sheet %s: %v", ErrWriteWorkbook, name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{
			name:   SheetParameters,
			header: []interface{}{"Parameter", "Value"},
			rows:   parameterCells(doc),
		},
		{
			name:   SheetCountries,
			header: []interface{}{"Rank", "Country", "Continent", "Mean wind speed (m/s)", "Points"},
			rows:   countryCells(doc),
		},
		{
			name:   SheetFinancials,
			header: []interface{}{"Country", "Avg wind speed (m/s)", "Energy (MWh/year)", "Revenue (EUR/year)", "NPV (EUR)", "IRR", "Payback (years)", "Rentability"},
			rows:   financialCells(doc),
		},
		{
			name:   SheetObservations,
			header: []interface{}{"Latitude", "Longitude", "Avg wind speed (m/s)", "Acquired at (UTC)"},
			rows:   observationCells(doc),
		},
	}

	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows, bold); err != nil {
			return fmt.Errorf("%w: sheet %s: %v", ErrWriteWorkbook, s.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func parameterCells(doc Document) [][]interface{} {
	p := doc.Params

	return [][]interface{}{
		{"run_id", doc.RunID},
		{"generated_at", doc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z")},
		{"region", string(p.Region)},
		{"grid_size", p.GridSize},
		{"turbine_area", p.TurbineArea},
		{"efficiency", p.Efficiency},
		{"price_per_kwh", p.PricePerKWh},
		{"capex", p.Capex},
		{"opex", p.Opex},
		{"discount_rate", p.DiscountRate},
		{"lifetime", p.Lifetime},
		{"top_n", p.TopN},
		{"grid_points", doc.GridPoints},
		{"fetched", doc.Fetched},
		{"spacing_lon_km", doc.SpacingLonKm},
		{"spacing_lat_km", doc.SpacingLatKm},
	}
}

func countryCells(doc Document) [][]interface{} {
	rows := make([][]interface{}, 0, len(doc.Stats))
	for i, s := range doc.Stats {
		rows = append(rows, []interface{}{i + 1, s.Country, s.Continent, s.MeanWindSpeed, s.Points})
	}

	return rows
}

func financialCells(doc Document) [][]interface{} {
	rows := make([][]interface{}, 0, len(doc.Results))
	for _, r := range doc.Results {
		var irr, payback interface{} = NotAvailable, NotAvailable
		if r.IRR != nil {
			irr = *r.IRR
		}
		if r.Payback != nil {
			payback = *r.Payback
		}

		rows = append(rows, []interface{}{r.Country, r.AvgWindSpeed, r.EnergyMWh, r.RevenuePerYear, r.NPV, irr, payback, r.Rentability})
	}

	return rows
}

func observationCells(doc Document) [][]interface{} {
	rows := make([][]interface{}, 0, len(doc.Observations))
	for _, o := range doc.Observations {
		rows = append(rows, []interface{}{o.Latitude, o.Longitude, o.AvgWindSpeed, o.AcquiredAt.UTC().Format("2006-01-02T15:04:05Z")})
	}

	return rows
}
