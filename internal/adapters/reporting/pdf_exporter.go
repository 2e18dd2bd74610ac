package reporting

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/wiztriage/wiztriage/internal/core/domain"
)

// PDFExporter renders the summary matrix as a PDF report.
type PDFExporter struct {
	path string
}

// NewPDFExporter creates a PDF exporter writing to path.
func NewPDFExporter(path string) *PDFExporter {
	return &PDFExporter{path: path}
}

// Export generates the PDF and writes it to the configured path.
func (e *PDFExporter) Export(ctx context.Context, analysis *domain.Analysis) error {
	data, err := e.render(analysis)
	if err != nil {
		return err
	}
	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", e.path, err)
	}
	return nil
}

// render builds the PDF document in memory.
func (e *PDFExporter) render(analysis *domain.Analysis) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, analysis)
	e.addMatrix(pdf, analysis.Matrix)
	e.addGroupTotals(pdf, analysis)
	e.addFooter(pdf, analysis)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report title and run metadata
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, analysis *domain.Analysis) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 14, "Vulnerability Ownership Summary", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Profile: %s", analysis.Profile), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Source: %s", analysis.Source), "", 1, "L", false, 0, "")
	if analysis.Period != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Reporting Period: %s", analysis.Period), "", 1, "L", false, 0, "")
	}
	dateStr := fmt.Sprintf("Generated: %s", analysis.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")

	pdf.Ln(6)
}

// addMatrix renders the severity-by-group table. Exploit sub-counts show as
// "n (e exploitable)" on the Critical/High rows of tracked columns.
func (e *PDFExporter) addMatrix(pdf *gofpdf.Fpdf, m *domain.Matrix) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Severity Distribution", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	colWidth := 160.0 / float64(len(m.Columns))

	// Header row
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(30, 8, "Severity", "1", 0, "L", true, 0, "")
	for _, col := range m.Columns {
		pdf.CellFormat(colWidth, 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Severity rows
	pdf.SetFont("Arial", "", 9)
	for _, row := range m.Rows {
		r, g, b := e.severityColor(row.Severity)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(30, 7, string(row.Severity), "1", 0, "L", false, 0, "")

		pdf.SetTextColor(60, 60, 60)
		for _, cell := range row.Cells {
			pdf.CellFormat(colWidth, 7, e.cellText(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Total row
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(30, 7, "Total", "1", 0, "L", false, 0, "")
	for _, cell := range m.TotalRow.Cells {
		pdf.CellFormat(colWidth, 7, fmt.Sprintf("%d", cell.Count), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.Ln(8)
}

func (e *PDFExporter) cellText(cell domain.Cell) string {
	if cell.Exploit != nil {
		return fmt.Sprintf("%d (%d expl.)", cell.Count, *cell.Exploit)
	}
	return fmt.Sprintf("%d", cell.Count)
}

// addGroupTotals lists each group's record count.
func (e *PDFExporter) addGroupTotals(pdf *gofpdf.Fpdf, analysis *domain.Analysis) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Group Assignment", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	for _, s := range analysis.Summaries {
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, s.Group+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(40, 7, fmt.Sprintf("%d records", s.Total), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}

	pdf.Ln(6)
}

// addFooter adds the run identifier
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, analysis *domain.Analysis) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 5, fmt.Sprintf("Run %s", analysis.ID), "", 1, "L", false, 0, "")
}

// severityColor returns RGB color for a severity row
func (e *PDFExporter) severityColor(s domain.Severity) (r, g, b int) {
	switch s {
	case domain.SeverityCritical:
		return 220, 53, 69 // Red
	case domain.SeverityHigh:
		return 255, 149, 0 // Orange
	case domain.SeverityMedium:
		return 255, 204, 0 // Yellow
	case domain.SeverityLow:
		return 52, 199, 89 // Green
	default:
		return 150, 150, 150 // Gray
	}
}
