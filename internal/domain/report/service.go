package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// Generate resolves the range and returns its rows
	Generate(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// Export renders the report as an Excel workbook
	Export(ctx context.Context, req ReportRequest) (ExportFile, error)

	// SendEmail mails the exported report; an empty range yields ErrNoRecords
	SendEmail(ctx context.Context, req EmailReportRequest) error

	// SendDaily mails the daily report for the calendar day before now,
	// including days without activity
	SendDaily(ctx context.Context) error
}
