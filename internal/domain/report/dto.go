package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// Row is one time record joined with its employee, as read for a report.
type Row struct {
	EmployeeCode    string
	EmployeeName    string
	Date            time.Time
	ClockIn         time.Time
	ClockOut        *time.Time
	DurationMinutes *int
}

type ReportRequest struct {
	Date    string `json:"date"`
	Type    string `json:"type"`
	EndDate string `json:"end_date,omitempty"`
}

// Resolve validates the request and returns its report type and date range.
func (r *ReportRequest) Resolve() (Type, Range, error) {
	return ResolveStrings(r.Date, r.Type, r.EndDate)
}

type EmailReportRequest struct {
	ReportRequest
	Recipient *string `json:"recipient,omitempty" validate:"omitempty,email"`
}

func (r *EmailReportRequest) Validate() error {
	return validator.Struct(r)
}

type ReportResponse struct {
	Type         string        `json:"type"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	GeneratedAt  string        `json:"generated_at"`
	TotalMinutes int           `json:"total_minutes"`
	Rows         []RowResponse `json:"rows"`
}

type RowResponse struct {
	EmployeeCode    string  `json:"employee_code"`
	EmployeeName    string  `json:"employee_name"`
	Date            string  `json:"date"`
	Day             string  `json:"day"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        *string `json:"clock_out"`
	DurationMinutes *int    `json:"duration_minutes"`
	TotalHours      string  `json:"total_hours"`
}

// ExportFile is a rendered report ready to be downloaded or attached.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Filename names an exported report after its range.
func Filename(t Type, r Range) string {
	if t == Custom {
		return "time-report-" + r.Start.Format(DateLayout) + "-to-" + r.End.Format(DateLayout) + ".xlsx"
	}
	return "time-report-" + r.Start.Format(DateLayout) + "-" + t.String() + ".xlsx"
}

// Subject is the e-mail subject line for a report over r.
func Subject(r Range) string {
	return "Time Report for " + r.String()
}

// FormatDuration renders minutes as "Xh YYm". Open sessions render blank.
func FormatDuration(minutes *int) string {
	if minutes == nil {
		return ""
	}
	m := *minutes
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%dh %02dm", sign, m/60, m%60)
}

// FormatClock renders an instant as a 12-hour wall-clock time in loc.
func FormatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("03:04 PM")
}
