package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// emailRegex is compiled once at package level.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SendReportInput represents the input for emailing a statistics report.
type SendReportInput struct {
	UserID      int64
	AccessToken string
	Email       string
	Period      string
	StartDate   string
	EndDate     string
}

// SendReportOutput represents the result of emailing a statistics report.
type SendReportOutput struct {
	ReportID string
	ResendID string
	Email    string
	Period   statistics.Period
}

// SendReportUseCase handles rendering and emailing the statistics report.
type SendReportUseCase struct {
	statistics *statistics.GetStatisticsUseCase
	renderer   adapter.ReportRenderer
	sender     adapter.EmailSender
	attachment adapter.Exporter
}

// NewSendReportUseCase creates a new SendReportUseCase instance.
// A nil sender disables the use case. When attachment is set, the records of
// the period are attached to the email in its format.
func NewSendReportUseCase(
	statsUseCase *statistics.GetStatisticsUseCase,
	renderer adapter.ReportRenderer,
	sender adapter.EmailSender,
	attachment adapter.Exporter,
) *SendReportUseCase {
	return &SendReportUseCase{
		statistics: statsUseCase,
		renderer:   renderer,
		sender:     sender,
		attachment: attachment,
	}
}

// Enabled reports whether an email provider is configured.
func (uc *SendReportUseCase) Enabled() bool {
	return uc.sender != nil
}

// Execute builds the report of the period and sends it to input.Email.
func (uc *SendReportUseCase) Execute(ctx context.Context, input SendReportInput) (*SendReportOutput, error) {
	if !uc.Enabled() {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeReportDisabled,
			domainerror.ErrReportDisabled.Error(),
			domainerror.ErrReportDisabled,
		)
	}

	email := strings.TrimSpace(input.Email)
	if !isValidEmail(email) {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidEmail,
			"a valid email address is required",
			nil,
		)
	}

	report, err := uc.statistics.Execute(ctx, statistics.GetStatisticsInput{
		UserID:      input.UserID,
		AccessToken: input.AccessToken,
		Period:      input.Period,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	rendered, err := uc.renderer.RenderReport(adapter.ReportData{
		PeriodLabel:       report.Period.Label,
		StartDate:         report.Period.StartDate,
		EndDate:           report.Period.EndDate,
		TotalRevenue:      report.Summary.TotalRevenue,
		TotalExpenses:     report.Summary.TotalExpenses,
		NetBalance:        report.Summary.NetBalance,
		AverageDailySpend: report.Summary.AverageDailySpend,
		Categories:        CategoryRows(report.Categories),
		SkippedCount:      report.SkippedCount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	attachments, err := uc.buildAttachments(report)
	if err != nil {
		return nil, err
	}

	reportID := uuid.New().String()
	result, err := uc.sender.Send(ctx, adapter.SendEmailInput{
		To:          email,
		Subject:     rendered.Subject,
		HTML:        rendered.HTML,
		Text:        rendered.Text,
		Attachments: attachments,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to send statistics report",
			"report_id", reportID,
			"user_id", input.UserID,
			"error", err,
		)
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeReportDelivery,
			"failed to deliver the report",
			err,
		)
	}

	slog.InfoContext(ctx, "Statistics report sent",
		"report_id", reportID,
		"resend_id", result.ResendID,
		"user_id", input.UserID,
	)

	return &SendReportOutput{
		ReportID: reportID,
		ResendID: result.ResendID,
		Email:    email,
		Period:   report.Period,
	}, nil
}

func (uc *SendReportUseCase) buildAttachments(report *statistics.GetStatisticsOutput) ([]adapter.EmailAttachment, error) {
	if uc.attachment == nil || report.ExpenseCount+report.RevenueCount == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	doc := BuildExportDocument(report.Period, report.Expenses, report.Revenues)
	if err := uc.attachment.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to build report attachment: %w", err)
	}

	return []adapter.EmailAttachment{{
		Filename:    fmt.Sprintf("statistics_%s.%s", report.Period.EndDate.Format(time.DateOnly), uc.attachment.Format()),
		ContentType: uc.attachment.ContentType(),
		Content:     buf.Bytes(),
	}}, nil
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
