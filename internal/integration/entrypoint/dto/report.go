package dto

import (
	"github.com/budgetwise/statistics/internal/application/usecase/report"
)

// SendReportRequest represents the request body for emailing a statistics report.
type SendReportRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SendReportResponse represents the response after a report was sent.
type SendReportResponse struct {
	ReportID string         `json:"report_id"`
	Email    string         `json:"email"`
	Period   PeriodResponse `json:"period"`
	Message  string         `json:"message"`
}

// ToSendReportResponse converts a SendReportOutput to SendReportResponse DTO.
func ToSendReportResponse(output *report.SendReportOutput) SendReportResponse {
	return SendReportResponse{
		ReportID: output.ReportID,
		Email:    output.Email,
		Period:   ToPeriodResponse(output.Period),
		Message:  "Report sent to " + output.Email,
	}
}
