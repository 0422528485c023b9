// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/budgetwise/statistics/internal/domain/error"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/dto"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/middleware"
)

// handleStatisticsError handles statistics errors and returns appropriate HTTP responses.
func handleStatisticsError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		statusCode := getStatusCodeForStatisticsError(statsErr.Code)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Statistics request failed",
				"code", statsErr.Code,
				"error", err,
				"request_id", middleware.GetRequestID(ctx),
			)
		}
		response := dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		}
		if statsErr.Err != nil && statusCode < http.StatusInternalServerError {
			response.Details = statsErr.Err.Error()
		}
		ctx.JSON(statusCode, response)
		return
	}

	var rangeErr *domainerror.InvalidRangeError
	if errors.As(err, &rangeErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   domainerror.ErrInvalidDateRange.Error(),
			Code:    string(domainerror.ErrCodeInvalidDateRange),
			Details: rangeErr.Error(),
		})
		return
	}

	slog.Error("Unexpected error", "error", err, "request_id", middleware.GetRequestID(ctx))
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeStatisticsInternalError),
	})
}

// getStatusCodeForStatisticsError maps statistics error codes to HTTP status codes.
func getStatusCodeForStatisticsError(code domainerror.StatisticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingStartDate,
		domainerror.ErrCodeMissingEndDate,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidMonthFormat,
		domainerror.ErrCodeInvalidExportFormat,
		domainerror.ErrCodeInvalidEmail:
		return http.StatusBadRequest
	case domainerror.ErrCodeNoDataToExport:
		return http.StatusNotFound
	case domainerror.ErrCodeSourceUnauthorized:
		return http.StatusUnauthorized
	case domainerror.ErrCodeSourceUnavailable,
		domainerror.ErrCodeReportDelivery:
		return http.StatusBadGateway
	case domainerror.ErrCodeReportDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requireUser reads the authenticated user from the context, answering 401 when absent.
func requireUser(ctx *gin.Context) (int64, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return 0, "", false
	}
	return userID, middleware.GetAccessTokenFromContext(ctx), true
}
