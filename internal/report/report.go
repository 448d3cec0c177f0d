// Package report turns pipeline results into a PDF report and an XLSX workbook.
package report

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/katiamach/wind-viability-report/internal/model"
)

// Fixed file names inside the run directory.
const (
	PDFFile      = "report.pdf"
	WorkbookFile = "report.xlsx"
)

// NotAvailable marks a missing IRR or payback.
const NotAvailable = "N/A"

var (
	ErrWritePDF      = errors.New("failed to write pdf report")
	ErrWriteWorkbook = errors.New("failed to write workbook")
)

// Document is everything a report shows.
type Document struct {
	RunID       string
	GeneratedAt time.Time
	Params      model.Params
	// approximate grid cell size in km
	SpacingLonKm float64
	SpacingLatKm float64
	GridPoints   int
	Fetched      int
	Stats        []model.CountryStat
	Results      []model.FinancialResult
	Observations []model.WindObservation
	Images       []string
}

// Row is one formatted line of the results table.
type Row struct {
	Country      string
	AvgWindSpeed string
	Points       string
	NPV          string
	IRR          string
	Payback      string
	Rentability  string
	Revenue      string
}

// Header returns the results table column titles.
func Header() []string {
	return []string{"Country", "Avg wind (m/s)", "Points", "NPV (EUR)", "IRR", "Payback (years)", "Rentability", "Revenue/year (EUR)"}
}

// Cells returns the row in Header order.
func (r Row) Cells() []string {
	return []string{r.Country, r.AvgWindSpeed, r.Points, r.NPV, r.IRR, r.Payback, r.Rentability, r.Revenue}
}

// Table builds the rows of the first topN results. Point counts come from stats.
func Table(stats []model.CountryStat, results []model.FinancialResult, topN int) []Row {
	points := make(map[string]int, len(stats))
	for _, s := range stats {
		points[s.Country] = s.Points
	}

	if topN < 0 {
		topN = 0
	}
	if topN > len(results) {
		topN = len(results)
	}

	rows := make([]Row, 0, topN)
	for _, r := range results[:topN] {
		rows = append(rows, Row{
			Country:      r.Country,
			AvgWindSpeed: fmt.Sprintf("%.2f", r.AvgWindSpeed),
			Points:       humanize.Comma(int64(points[r.Country])),
			NPV:          money(r.NPV),
			IRR:          FormatIRR(r.IRR),
			Payback:      FormatPayback(r.Payback),
			Rentability:  fmt.Sprintf("%.3f", r.Rentability),
			Revenue:      money(r.RevenuePerYear),
		})
	}

	return rows
}

// FormatIRR renders a rate as percent or N/A.
func FormatIRR(irr *float64) string {
	if irr == nil {
		return NotAvailable
	}

	return fmt.Sprintf("%.2f%%", *irr*100)
}

// FormatPayback renders a payback year or N/A.
func FormatPayback(payback *int) string {
	if payback == nil {
		return NotAvailable
	}

	return fmt.Sprintf("%d", *payback)
}

// ParamRows lists the input parameters as label/value pairs.
func ParamRows(p model.Params) [][2]string {
	return [][2]string{
		{"Region", string(p.Region)},
		{"Grid size", fmt.Sprintf("%d x %d", p.GridSize, p.GridSize)},
		{"Turbine swept area (m2)", humanize.Commaf(p.TurbineArea)},
		{"Efficiency", fmt.Sprintf("%.2f", p.Efficiency)},
		{"Electricity price (EUR/kWh)", fmt.Sprintf("%.4f", p.PricePerKWh)},
		{"CAPEX (EUR)", money(p.Capex)},
		{"OPEX (EUR/year)", money(p.Opex)},
		{"Discount rate", fmt.Sprintf("%.2f%%", p.DiscountRate*100)},
		{"Lifetime (years)", fmt.Sprintf("%d", p.Lifetime)},
		{"Top N", fmt.Sprintf("%d", p.TopN)},
	}
}

func money(v float64) string {
	return humanize.Commaf(math.Round(v))
}

// Files lists the written report files.
type Files struct {
	PDF      string
	Workbook string
}

// Writer writes both report formats into a directory.
type Writer struct{}

// NewWriter creates new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write writes report.pdf and report.xlsx into dir.
func (w *Writer) Write(dir string, doc Document) (*Files, error) {
	files := &Files{
		PDF:      filepath.Join(dir, PDFFile),
		Workbook: filepath.Join(dir, WorkbookFile),
	}

	if err := WritePDF(files.PDF, doc); err != nil {
		return nil, err
	}

	if err := WriteWorkbook(files.Workbook, doc); err != nil {
		return nil, err
	}

	return files, nil
}
