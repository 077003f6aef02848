package report

import "context"

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// ListRows returns every time record dated within r, ordered by date,
	// employee name and clock-in.
	ListRows(ctx context.Context, r Range) ([]Row, error)
}
