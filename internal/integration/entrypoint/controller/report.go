package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/statistics/internal/application/usecase/report"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/dto"
)

// ReportController handles the export and emailed report endpoints.
type ReportController struct {
	exportRecordsUseCase *report.ExportRecordsUseCase
	sendReportUseCase    *report.SendReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	exportRecordsUseCase *report.ExportRecordsUseCase,
	sendReportUseCase *report.SendReportUseCase,
) *ReportController {
	return &ReportController{
		exportRecordsUseCase: exportRecordsUseCase,
		sendReportUseCase:    sendReportUseCase,
	}
}

// Export handles GET /statistics/export requests.
func (c *ReportController) Export(ctx *gin.Context) {
	userID, token, ok := requireUser(ctx)
	if !ok {
		return
	}

	query := statisticsQuery(ctx)

	output, err := c.exportRecordsUseCase.Execute(ctx.Request.Context(), report.ExportRecordsInput{
		UserID:      userID,
		AccessToken: token,
		Period:      query.Period,
		StartDate:   query.StartDate,
		EndDate:     query.EndDate,
		Format:      ctx.Query("format"),
	})
	if err != nil {
		handleStatisticsError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Header("X-Row-Count", strconv.Itoa(output.RowCount))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// SendReport handles POST /statistics/report requests.
func (c *ReportController) SendReport(ctx *gin.Context) {
	userID, token, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SendReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.sendReportUseCase.Execute(ctx.Request.Context(), report.SendReportInput{
		UserID:      userID,
		AccessToken: token,
		Email:       req.Email,
		Period:      req.Period,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.ToSendReportResponse(output))
}
