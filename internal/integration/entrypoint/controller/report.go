// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetly/backend/internal/application/usecase/report"
	domainerror "github.com/budgetly/backend/internal/domain/error"
	"github.com/budgetly/backend/internal/integration/entrypoint/dto"
	"github.com/budgetly/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles reporting and export endpoints.
type ReportController struct {
	summaryUseCase  *report.MonthlySummaryUseCase
	csvUseCase      *report.ExportCSVUseCase
	pdfUseCase      *report.ExportPDFUseCase
	insightsUseCase *report.GetInsightsUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	summaryUseCase *report.MonthlySummaryUseCase,
	csvUseCase *report.ExportCSVUseCase,
	pdfUseCase *report.ExportPDFUseCase,
	insightsUseCase *report.GetInsightsUseCase,
) *ReportController {
	return &ReportController{
		summaryUseCase:  summaryUseCase,
		csvUseCase:      csvUseCase,
		pdfUseCase:      pdfUseCase,
		insightsUseCase: insightsUseCase,
	}
}

// MonthlySummary handles GET /reports/monthly requests.
func (c *ReportController) MonthlySummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	month, year, ok := c.parsePeriod(ctx)
	if !ok {
		return
	}

	input := report.MonthlySummaryInput{
		UserID: userID,
		Month:  month,
		Year:   year,
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output))
}

// ExportCSV handles GET /reports/export/csv requests. The start_date and
// end_date query parameters bound the export range.
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	startDateParam := ctx.Query("start_date")
	if startDateParam == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "start_date is required",
			Code:  string(domainerror.ErrCodeMissingStartDate),
		})
		return
	}

	endDateParam := ctx.Query("end_date")
	if endDateParam == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "end_date is required",
			Code:  string(domainerror.ErrCodeMissingEndDate),
		})
		return
	}

	startDate, err := time.Parse(dateLayout, startDateParam)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidReportRange),
		})
		return
	}

	endDate, err := time.Parse(dateLayout, endDateParam)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidReportRange),
		})
		return
	}

	input := report.ExportCSVInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	output, err := c.csvUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", output.FileName))
	ctx.Data(http.StatusOK, "text/csv", output.Content)
}

// ExportPDF handles GET /reports/export/pdf requests.
func (c *ReportController) ExportPDF(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	month, year, ok := c.parsePeriod(ctx)
	if !ok {
		return
	}

	input := report.ExportPDFInput{
		UserID: userID,
		Month:  month,
		Year:   year,
	}

	output, err := c.pdfUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", output.FileName))
	ctx.Data(http.StatusOK, "application/pdf", output.Content)
}

// Insights handles GET /reports/insights requests.
func (c *ReportController) Insights(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	month, year, ok := c.parsePeriod(ctx)
	if !ok {
		return
	}

	input := report.GetInsightsInput{
		UserID: userID,
		Month:  month,
		Year:   year,
	}

	output, err := c.insightsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InsightsResponse{
		Month:       output.Month,
		Year:        output.Year,
		Commentary:  output.Commentary,
		GeneratedAt: output.GeneratedAt,
	})
}

// parsePeriod reads the month and year query parameters. It writes the
// error response itself and returns ok=false when they are invalid.
func (c *ReportController) parsePeriod(ctx *gin.Context) (int, int, bool) {
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing month parameter",
			Code:  string(domainerror.ErrCodeInvalidReportRange),
		})
		return 0, 0, false
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid or missing year parameter",
			Code:  string(domainerror.ErrCodeInvalidReportRange),
		})
		return 0, 0, false
	}

	return month, year, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		statusCode := c.getStatusCodeForReportError(reportErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func (c *ReportController) getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingStartDate,
		domainerror.ErrCodeMissingEndDate,
		domainerror.ErrCodeInvalidReportRange:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsightsUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
