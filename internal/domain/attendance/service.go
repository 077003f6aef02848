package attendance

import (
	"context"
)

// AttendanceService defines business logic for clock-in/clock-out
type AttendanceService interface {
	// ClockIn opens a session for the employee
	ClockIn(ctx context.Context, req ClockRequest) (SessionResponse, error)

	// ClockOut closes the employee's open session; nil when there was nothing to close
	ClockOut(ctx context.Context, req ClockRequest) (*SessionResponse, error)

	// IsActive reports whether the employee has an open session
	IsActive(ctx context.Context, employeeID string) (bool, error)

	// ListSessions retrieves the employee's sessions
	ListSessions(ctx context.Context, filter SessionFilter) ([]SessionResponse, error)

	// Subscribe streams session events for one employee, or for everyone when
	// employeeID is empty
	Subscribe(ctx context.Context, employeeID string) (<-chan SessionEvent, func())
}
