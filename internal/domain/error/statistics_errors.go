// Package error defines domain-specific errors for the BudgetWise statistics service.
package error

import (
	"errors"
	"fmt"
	"time"
)

// Statistics domain errors.
var (
	// ErrMissingStartDate is returned when a custom period has no start_date.
	ErrMissingStartDate = errors.New("start_date is required")

	// ErrMissingEndDate is returned when a custom period has no end_date.
	ErrMissingEndDate = errors.New("end_date is required")

	// ErrInvalidDateRange is returned when the end date is before the start date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrInvalidDateFormat is returned when a date parameter cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidPeriod is returned when the period kind is unknown.
	ErrInvalidPeriod = errors.New("period must be: month, year, or custom")

	// ErrInvalidMonthFormat is returned when a month parameter cannot be parsed.
	ErrInvalidMonthFormat = errors.New("invalid month format, expected YYYY-MM")

	// ErrNoDataToExport is returned when an export period holds no records.
	ErrNoDataToExport = errors.New("no data to export")

	// ErrInvalidExportFormat is returned when the export format is unknown.
	ErrInvalidExportFormat = errors.New("format must be: csv or xlsx")

	// ErrMalformedRecordDate is returned when a record has a missing or malformed date.
	ErrMalformedRecordDate = errors.New("record has a missing or malformed date")

	// ErrSourceUnavailable is returned when the record source cannot be reached.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrSourceUnauthorized is returned when the record source rejects the credentials.
	ErrSourceUnauthorized = errors.New("record source rejected the credentials")

	// ErrBudgetNotFound is returned when no budget exists for a month.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrReportDisabled is returned when email reports are not configured.
	ErrReportDisabled = errors.New("email reports are not configured")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate    StatisticsErrorCode = "STA-010001"
	ErrCodeMissingEndDate      StatisticsErrorCode = "STA-010002"
	ErrCodeInvalidDateRange    StatisticsErrorCode = "STA-010003"
	ErrCodeInvalidDateFormat   StatisticsErrorCode = "STA-010004"
	ErrCodeInvalidPeriod       StatisticsErrorCode = "STA-010005"
	ErrCodeInvalidMonthFormat  StatisticsErrorCode = "STA-010006"
	ErrCodeNoDataToExport      StatisticsErrorCode = "STA-010007"
	ErrCodeInvalidExportFormat StatisticsErrorCode = "STA-010008"
	ErrCodeInvalidEmail        StatisticsErrorCode = "STA-010009"

	// Upstream errors (02XXXX)
	ErrCodeSourceUnavailable  StatisticsErrorCode = "STA-020001"
	ErrCodeSourceUnauthorized StatisticsErrorCode = "STA-020002"
	ErrCodeReportDisabled     StatisticsErrorCode = "STA-020003"
	ErrCodeReportDelivery     StatisticsErrorCode = "STA-020004"

	// Internal errors (99XXXX)
	ErrCodeStatisticsInternalError StatisticsErrorCode = "STA-990001"
)

// StatisticsError represents a statistics error with code and message.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidRangeError reports a period whose end precedes its start.
// It matches ErrInvalidDateRange with errors.Is.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

// NewInvalidRangeError creates a new InvalidRangeError.
func NewInvalidRangeError(start, end time.Time) *InvalidRangeError {
	return &InvalidRangeError{Start: start, End: end}
}

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("end date %s is before start date %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// Is reports whether target is ErrInvalidDateRange.
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidDateRange
}

// MalformedRecordError identifies a record excluded from date-based aggregation.
// It matches ErrMalformedRecordDate with errors.Is.
type MalformedRecordError struct {
	Kind     string
	RecordID int64
	RawDate  string
}

// NewMalformedRecordError creates a new MalformedRecordError.
func NewMalformedRecordError(kind string, recordID int64, rawDate string) *MalformedRecordError {
	return &MalformedRecordError{Kind: kind, RecordID: recordID, RawDate: rawDate}
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	if e.RawDate == "" {
		return fmt.Sprintf("%s %d has no date", e.Kind, e.RecordID)
	}
	return fmt.Sprintf("%s %d has malformed date %q", e.Kind, e.RecordID, e.RawDate)
}

// Is reports whether target is ErrMalformedRecordDate.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecordDate
}
