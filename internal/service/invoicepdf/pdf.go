// Package invoicepdf renders an invoice as a PDF document sent to clients.
package invoicepdf

import (
	"bytes"
	"fmt"
	"time"

	gofpdf "github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
)

// Line is one billable row of the invoice.
type Line struct {
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
}

// Document carries everything the PDF needs. Amounts are already computed;
// rendering never recalculates totals.
type Document struct {
	Number     string
	ClientName string
	IssuedAt   time.Time
	DueDate    time.Time
	Lines      []Line
	Total      float64
}

var columns = []struct {
	title string
	width float64
}{
	{"Description", 100},
	{"Hours", 25},
	{"Rate", 30},
	{"Amount", 35},
}

// Render builds the PDF in memory.
func Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 12, "INVOICE")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(90, 12, doc.Number, "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.Cell(100, 6, "Billed to: "+doc.ClientName)
	pdf.Ln(6)
	pdf.Cell(100, 6, "Issued: "+doc.IssuedAt.Format("2006-01-02"))
	pdf.Ln(6)
	pdf.Cell(100, 6, "Due: "+doc.DueDate.Format("2006-01-02"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, line := range doc.Lines {
		pdf.CellFormat(columns[0].width, 8, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[1].width, 8, fmt.Sprintf("%.2f", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[2].width, 8, fmt.Sprintf("$%.2f", line.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[3].width, 8, fmt.Sprintf("$%.2f", line.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(columns[0].width+columns[1].width+columns[2].width, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columns[3].width, 8, fmt.Sprintf("$%.2f", doc.Total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing invoice pdf")
	}

	return buf.Bytes(), nil
}
