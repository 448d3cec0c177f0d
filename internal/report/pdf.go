package report

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"github.com/dustin/go-humanize"
)

const (
	lineHeight  = 6.0
	imageWidth  = 180.0
	fontFamily  = "Helvetica"
	titleSize   = 16
	sectionSize = 12
	bodySize    = 9
	tableSize   = 8
)

var columnWidths = []float64{30, 20, 15, 30, 18, 22, 20, 35}

// WritePDF lays out parameters, results table and images into one PDF file.
func WritePDF(path string, doc Document) error {
	if err := layout(doc).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	return nil
}

// layout builds the document pages. Text goes through a cp1252 translator
// since the core fonts are not UTF-8 aware.
func layout(doc Document) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Wind viability report", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", tableSize)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Run %s - page %d/{nb}", doc.RunID, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.CellFormat(0, 10, "Wind turbine viability report", "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", bodySize)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Generated %s (UTC)", doc.GeneratedAt.UTC().Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Grid points %s, fetched %s, observations %s, countries %s",
		humanize.Comma(int64(doc.GridPoints)),
		humanize.Comma(int64(doc.Fetched)),
		humanize.Comma(int64(len(doc.Observations))),
		humanize.Comma(int64(len(doc.Stats))),
	), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Grid cell about %.0f km x %.0f km (lon x lat)", doc.SpacingLonKm, doc.SpacingLatKm), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, tr, "Parameters")
	pdf.SetFont(fontFamily, "", bodySize)
	for _, kv := range ParamRows(doc.Params) {
		pdf.CellFormat(70, lineHeight, tr(kv[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, lineHeight, tr(kv[1]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, tr, fmt.Sprintf("Top %d countries", doc.Params.TopN))
	rows := Table(doc.Stats, doc.Results, doc.Params.TopN)
	if len(rows) == 0 {
		pdf.SetFont(fontFamily, "I", bodySize)
		pdf.CellFormat(0, lineHeight, "No country could be analysed.", "", 1, "L", false, 0, "")
	} else {
		table(pdf, tr, Header(), rows)
	}

	for _, img := range doc.Images {
		pdf.AddPage()
		pdf.ImageOptions(img, 15, 20, imageWidth, 0, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}

	return pdf
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont(fontFamily, "B", sectionSize)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
}

func table(pdf *fpdf.Fpdf, tr func(string) string, header []string, rows []Row) {
	pdf.SetFont(fontFamily, "B", tableSize)
	pdf.SetFillColor(220, 230, 241)
	for i, h := range header {
		pdf.CellFormat(columnWidths[i], lineHeight, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", tableSize)
	for _, r := range rows {
		for i, c := range r.Cells() {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(columnWidths[i], lineHeight, tr(c), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}
