// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

//go:generate mockgen -source=email_sender.go -destination=mocks/email_sender_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EmailAttachment is a file sent along with an email.
type EmailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []EmailAttachment
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// RenderedEmail holds both bodies of a rendered email.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// ReportData is the content of the statistics report email.
type ReportData struct {
	PeriodLabel       string
	StartDate         time.Time
	EndDate           time.Time
	TotalRevenue      decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetBalance        decimal.Decimal
	AverageDailySpend decimal.Decimal
	Categories        []ExportCategoryRow
	SkippedCount      int
}

// ReportRenderer renders the statistics report email.
type ReportRenderer interface {
	// RenderReport renders the report email for the given data.
	RenderReport(data ReportData) (*RenderedEmail, error)
}
