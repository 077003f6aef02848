package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
)

type AttendanceServiceImpl struct {
	attendance.SessionRepository
	employee.EmployeeRepository
	clock clock.Clock
	hub   *sse.Hub
}

func NewAttendanceService(
	sessionRepo attendance.SessionRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		SessionRepository:  sessionRepo,
		EmployeeRepository: employeeRepo,
		clock:              clk,
		hub:                hub,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.SessionResponse{}, err
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	session := attendance.NewOpenSession(req.EmployeeID, a.clock.Now(), a.clock.Location())
	opened, err := a.SessionRepository.Open(ctx, session)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionAlreadyOpen) {
			slog.Info("clock-in rejected, session already open", "employee_id", req.EmployeeID)
		}
		return attendance.SessionResponse{}, err
	}

	slog.Info("employee clocked in",
		"employee_id", opened.EmployeeID,
		"session_id", opened.ID,
		"date", opened.Date.Format("2006-01-02"),
	)
	resp := a.toResponse(opened)
	a.publish(attendance.EventClockIn, resp)
	return resp, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (*attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	open, err := a.SessionRepository.FindOpenSession(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		slog.Info("clock-out with no open session", "employee_id", req.EmployeeID)
		return nil, nil
	}

	closed, err := open.Close(a.clock.Now())
	if err != nil {
		return nil, err
	}
	if *closed.DurationMinutes < 0 {
		slog.Warn("clock-out before clock-in, keeping negative duration",
			"employee_id", closed.EmployeeID,
			"session_id", closed.ID,
			"duration_minutes", *closed.DurationMinutes,
		)
	}

	if err := a.SessionRepository.Close(ctx, closed); err != nil {
		if errors.Is(err, attendance.ErrSessionAlreadyClosed) {
			slog.Info("session closed concurrently", "employee_id", req.EmployeeID, "session_id", closed.ID)
			return nil, nil
		}
		return nil, err
	}

	slog.Info("employee clocked out",
		"employee_id", closed.EmployeeID,
		"session_id", closed.ID,
		"duration_minutes", *closed.DurationMinutes,
	)
	resp := a.toResponse(closed)
	a.publish(attendance.EventClockOut, resp)
	return &resp, nil
}

// IsActive implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) IsActive(ctx context.Context, employeeID string) (bool, error) {
	return a.SessionRepository.HasOpenSession(ctx, employeeID)
}

// ListSessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListSessions(ctx context.Context, filter attendance.SessionFilter) ([]attendance.SessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var date *time.Time
	if filter.Date != nil && *filter.Date != "" {
		d, _ := time.Parse("2006-01-02", *filter.Date)
		date = &d
	}

	sessions, err := a.SessionRepository.ListByEmployee(ctx, filter.EmployeeID, date)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, a.toResponse(s))
	}
	return responses, nil
}

func (a *AttendanceServiceImpl) toResponse(s attendance.Session) attendance.SessionResponse {
	loc := a.clock.Location()
	resp := attendance.SessionResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		Date:            s.Date.Format("2006-01-02"),
		ClockIn:         s.ClockIn.In(loc).Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		Active:          s.IsOpen(),
	}
	if s.ClockOut != nil {
		out := s.ClockOut.In(loc).Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}

func (a *AttendanceServiceImpl) publish(event string, resp attendance.SessionResponse) {
	if a.hub == nil {
		return
	}
	a.hub.Publish(resp.EmployeeID, sse.Event{Event: event, Data: resp})
}

// Subscribe implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Subscribe(ctx context.Context, employeeID string) (<-chan attendance.SessionEvent, func()) {
	out := make(chan attendance.SessionEvent, 16)
	if a.hub == nil {
		close(out)
		return out, func() {}
	}

	topic := employeeID
	if topic == "" {
		topic = sse.TopicAll
	}
	ch, cleanup := a.hub.Subscribe(topic)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(attendance.SessionResponse)
				if !ok {
					continue
				}
				select {
				case out <- attendance.SessionEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}
