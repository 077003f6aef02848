package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access methods for attendance sessions.
type SessionRepository interface {
	// Open inserts a new open session. Checking for an existing open session
	// and inserting happen as one atomic step per employee; a conflict
	// returns ErrSessionAlreadyOpen.
	Open(ctx context.Context, session Session) (Session, error)

	// FindOpenSession returns the open session of an employee, or nil when
	// there is none.
	FindOpenSession(ctx context.Context, employeeID string) (*Session, error)

	// Close persists clock_out and duration for a still-open session.
	// Returns ErrSessionAlreadyClosed when the row was closed concurrently.
	Close(ctx context.Context, session Session) error

	HasOpenSession(ctx context.Context, employeeID string) (bool, error)

	// ListByEmployee returns an employee's sessions, optionally limited to one date.
	ListByEmployee(ctx context.Context, employeeID string, date *time.Time) ([]Session, error)
}
