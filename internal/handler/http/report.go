package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	SendEmail(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func reportRequestFromQuery(r *http.Request) report.ReportRequest {
	q := r.URL.Query()
	req := report.ReportRequest{
		Date:    q.Get("date"),
		Type:    q.Get("type"),
		EndDate: q.Get("end_date"),
	}
	if req.Type == "" {
		req.Type = string(report.Daily)
	}
	return req
}

// Generate implements ReportHandler.
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reportService.Generate(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp, &response.Meta{
		StartDate:  resp.StartDate,
		EndDate:    resp.EndDate,
		TotalItems: int64(len(resp.Rows)),
	})
}

// Export implements ReportHandler.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.Export(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// SendEmail implements ReportHandler.
func (h *reportHandlerImpl) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req report.EmailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Send report decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Type == "" {
		req.Type = string(report.Daily)
	}

	if err := h.reportService.SendEmail(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report sent successfully", nil)
}
