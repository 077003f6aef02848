package cron

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
)

type ReportJobs struct {
	reportService report.ReportService
}

func NewReportJobs(reportService report.ReportService) *ReportJobs {
	return &ReportJobs{reportService: reportService}
}

// RegisterJobs schedules the daily report e-mail on spec.
func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("daily_time_report", spec, j.SendDailyReport)
}

func (j *ReportJobs) SendDailyReport(ctx context.Context) error {
	slog.Info("Cron: Sending daily time report")
	return j.reportService.SendDaily(ctx)
}
