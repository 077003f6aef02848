package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/excel"
)

type ReportServiceImpl struct {
	reportRepo   report.ReportRepository
	emailService email.EmailService
	clock        clock.Clock
	recipient    string
}

func NewReportService(
	reportRepo report.ReportRepository,
	emailService email.EmailService,
	clk clock.Clock,
	recipient string,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		emailService: emailService,
		clock:        clk,
		recipient:    recipient,
	}
}

// Generate implements report.ReportService.
func (s *ReportServiceImpl) Generate(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	typ, rng, err := req.Resolve()
	if err != nil {
		return report.ReportResponse{}, err
	}

	rows, err := s.reportRepo.ListRows(ctx, rng)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to get report rows: %w", err)
	}

	loc := s.clock.Location()
	resp := report.ReportResponse{
		Type:        typ.String(),
		StartDate:   rng.Start.Format(report.DateLayout),
		EndDate:     rng.End.Format(report.DateLayout),
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Rows:        make([]report.RowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		row := report.RowResponse{
			EmployeeCode:    r.EmployeeCode,
			EmployeeName:    r.EmployeeName,
			Date:            r.Date.Format(report.DateLayout),
			Day:             r.Date.Weekday().String(),
			ClockIn:         report.FormatClock(&r.ClockIn, loc),
			DurationMinutes: r.DurationMinutes,
			TotalHours:      report.FormatDuration(r.DurationMinutes),
		}
		if r.ClockOut != nil {
			out := report.FormatClock(r.ClockOut, loc)
			row.ClockOut = &out
		}
		if r.DurationMinutes != nil {
			resp.TotalMinutes += *r.DurationMinutes
		}
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ReportRequest) (report.ExportFile, error) {
	typ, rng, err := req.Resolve()
	if err != nil {
		return report.ExportFile{}, err
	}

	rows, err := s.reportRepo.ListRows(ctx, rng)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to get report rows: %w", err)
	}

	return s.render(typ, rng, rows)
}

// SendEmail implements report.ReportService.
func (s *ReportServiceImpl) SendEmail(ctx context.Context, req report.EmailReportRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	typ, rng, err := req.Resolve()
	if err != nil {
		return err
	}

	to := s.recipient
	if req.Recipient != nil {
		to = *req.Recipient
	}
	if to == "" {
		return report.ErrNoRecipient
	}

	rows, err := s.reportRepo.ListRows(ctx, rng)
	if err != nil {
		return fmt.Errorf("failed to get report rows: %w", err)
	}
	if len(rows) == 0 {
		return report.ErrNoRecords
	}

	return s.send(ctx, to, typ, rng, rows)
}

// SendDaily implements report.ReportService.
func (s *ReportServiceImpl) SendDaily(ctx context.Context) error {
	if s.recipient == "" {
		return report.ErrNoRecipient
	}

	yesterday := clock.DateOf(s.clock.Now(), s.clock.Location()).AddDate(0, 0, -1)
	rng, err := report.Resolve(yesterday, report.Daily, nil)
	if err != nil {
		return err
	}

	rows, err := s.reportRepo.ListRows(ctx, rng)
	if err != nil {
		return fmt.Errorf("failed to get report rows: %w", err)
	}

	return s.send(ctx, s.recipient, report.Daily, rng, rows)
}

func (s *ReportServiceImpl) render(typ report.Type, rng report.Range, rows []report.Row) (report.ExportFile, error) {
	data, err := excel.RenderTimeReport(rows, s.clock.Location())
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to render report: %w", err)
	}

	return report.ExportFile{
		Filename:    report.Filename(typ, rng),
		ContentType: excel.ContentType,
		Data:        data,
	}, nil
}

func (s *ReportServiceImpl) send(ctx context.Context, to string, typ report.Type, rng report.Range, rows []report.Row) error {
	file, err := s.render(typ, rng, rows)
	if err != nil {
		return err
	}

	total := 0
	for _, r := range rows {
		if r.DurationMinutes != nil {
			total += *r.DurationMinutes
		}
	}

	summary := email.ReportSummary{
		Title:       report.Subject(rng),
		Period:      rng.String(),
		RecordCount: len(rows),
		TotalHours:  report.FormatDuration(&total),
		Empty:       len(rows) == 0,
		GeneratedAt: s.clock.Now().Format(time.RFC1123),
	}
	attachment := email.Attachment{
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	}

	if err := s.emailService.SendReport(ctx, to, summary, attachment); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	slog.Info("time report sent", "to", to, "type", typ.String(), "period", rng.String(), "records", len(rows))
	return nil
}
