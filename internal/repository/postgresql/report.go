package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// ListRows retrieves every time record dated within r together with the
// owning employee. Soft-deleted employees keep their history in reports.
func (r *reportRepositoryImpl) ListRows(ctx context.Context, rng report.Range) ([]report.Row, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.employee_code, e.name, t.date, t.clock_in, t.clock_out, t.duration_minutes
		FROM time_records t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.date BETWEEN $1 AND $2
		ORDER BY t.date, e.name, t.clock_in
	`

	rows, err := q.Query(ctx, query, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	result := make([]report.Row, 0)
	for rows.Next() {
		var row report.Row
		if err := rows.Scan(
			&row.EmployeeCode, &row.EmployeeName, &row.Date, &row.ClockIn, &row.ClockOut, &row.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return result, nil
}
