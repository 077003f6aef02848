package report

import "errors"

var (
	ErrInvalidReportType = errors.New("report type must be one of: daily, weekly, monthly, custom")
	ErrInvalidDate       = errors.New("invalid date")
	ErrNoRecords         = errors.New("no time records found for the selected period")
	ErrNoRecipient       = errors.New("no report recipient configured")
)
