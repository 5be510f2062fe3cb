// Package report contains reporting and export use cases.
package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// ExportPDFInput represents the input for the PDF export.
type ExportPDFInput struct {
	UserID uuid.UUID
	Month  int
	Year   int
}

// ExportPDFOutput represents the output of the PDF export.
type ExportPDFOutput struct {
	FileName string
	Content  []byte
}

// ExportPDFUseCase renders the monthly summary report as a PDF document.
type ExportPDFUseCase struct {
	summary *MonthlySummaryUseCase
}

// NewExportPDFUseCase creates a new ExportPDFUseCase instance.
func NewExportPDFUseCase(summary *MonthlySummaryUseCase) *ExportPDFUseCase {
	return &ExportPDFUseCase{summary: summary}
}

// Execute performs the PDF export.
func (uc *ExportPDFUseCase) Execute(ctx context.Context, input ExportPDFInput) (*ExportPDFOutput, error) {
	summary, err := uc.summary.Execute(ctx, MonthlySummaryInput{
		UserID: input.UserID,
		Month:  input.Month,
		Year:   input.Year,
	})
	if err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Budgetly Monthly Report", false)
	doc.AddPage()

	period := time.Date(input.Year, time.Month(input.Month), 1, 0, 0, 0, 0, time.UTC)
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, fmt.Sprintf("Monthly Report - %s", period.Format("January 2006")), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("Income: %s", summary.Income.StringFixed(2)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Expenses: %s", summary.Expenses.StringFixed(2)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Net: %s", summary.Net.StringFixed(2)), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Spending by category", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(80, 7, "Category", "B", 0, "L", false, 0, "")
	doc.CellFormat(35, 7, "Amount", "B", 0, "R", false, 0, "")
	doc.CellFormat(25, 7, "Share", "B", 0, "R", false, 0, "")
	doc.CellFormat(25, 7, "Count", "B", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, item := range summary.Categories {
		name := item.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		doc.CellFormat(80, 7, name, "", 0, "L", false, 0, "")
		doc.CellFormat(35, 7, item.Amount.StringFixed(2), "", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%.1f%%", item.Percentage), "", 0, "R", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%d", item.Count), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, renderError(err)
	}

	return &ExportPDFOutput{
		FileName: fmt.Sprintf("report_%04d-%02d.pdf", input.Year, input.Month),
		Content:  buf.Bytes(),
	}, nil
}
