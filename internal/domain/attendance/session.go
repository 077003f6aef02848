package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
)

// NewOpenSession builds the session created by a clock-in at now. Date is the
// calendar day of now in loc and is never recomputed afterwards.
func NewOpenSession(employeeID string, now time.Time, loc *time.Location) Session {
	return Session{
		EmployeeID: employeeID,
		ClockIn:    now,
		Date:       clock.DateOf(now, loc),
	}
}

// Close returns a copy of s closed at now. A session closes exactly once.
func (s Session) Close(now time.Time) (Session, error) {
	if !s.IsOpen() {
		return s, ErrSessionAlreadyClosed
	}
	duration := DurationMinutes(s.ClockIn, now)
	s.ClockOut = &now
	s.DurationMinutes = &duration
	return s, nil
}

// DurationMinutes is the floor of the whole minutes between clockIn and
// clockOut. Negative or very large values are returned as is.
func DurationMinutes(clockIn, clockOut time.Time) int {
	return int(math.Floor(clockOut.Sub(clockIn).Minutes()))
}
