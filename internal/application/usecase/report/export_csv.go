// Package report contains reporting and export use cases.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgetly/backend/internal/application/adapter"
	domainerror "github.com/budgetly/backend/internal/domain/error"
)

// csvHeader is the column layout of transaction exports.
var csvHeader = []string{"date", "description", "category", "type", "amount", "notes"}

// ExportCSVInput represents the input for the CSV export.
type ExportCSVInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// ExportCSVOutput represents the output of the CSV export.
type ExportCSVOutput struct {
	FileName string
	Content  []byte
}

// ExportCSVUseCase renders a user's transactions for a period as CSV.
type ExportCSVUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewExportCSVUseCase creates a new ExportCSVUseCase instance.
func NewExportCSVUseCase(transactionRepo adapter.TransactionRepository) *ExportCSVUseCase {
	return &ExportCSVUseCase{transactionRepo: transactionRepo}
}

// Execute performs the CSV export.
func (uc *ExportCSVUseCase) Execute(ctx context.Context, input ExportCSVInput) (*ExportCSVOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.ListForExport(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, renderError(err)
	}
	for _, txn := range transactions {
		categoryName := ""
		if txn.Category != nil {
			categoryName = txn.Category.Name
		}
		record := []string{
			txn.Transaction.Date.Format("2006-01-02"),
			txn.Transaction.Description,
			categoryName,
			string(txn.Transaction.Type),
			txn.Transaction.Amount.StringFixed(2),
			txn.Transaction.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, renderError(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, renderError(err)
	}

	return &ExportCSVOutput{
		FileName: fmt.Sprintf("transactions_%s_%s.csv",
			input.StartDate.Format("20060102"), input.EndDate.Format("20060102")),
		Content: buf.Bytes(),
	}, nil
}

// validateRange validates an export date range.
func validateRange(start, end time.Time) error {
	if start.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingStartDate,
			"start date is required",
			domainerror.ErrMissingStartDate,
		)
	}
	if end.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingEndDate,
			"end date is required",
			domainerror.ErrMissingEndDate,
		)
	}
	if end.Before(start) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportRange,
			"end date must be after start date",
			domainerror.ErrInvalidReportRange,
		)
	}
	return nil
}

// renderError wraps a document rendering failure.
func renderError(err error) error {
	return domainerror.NewReportError(
		domainerror.ErrCodeReportRenderFailed,
		"failed to render report document",
		err,
	)
}
