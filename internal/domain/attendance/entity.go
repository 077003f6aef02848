package attendance

import (
	"time"
)

// Session is one clock-in/clock-out cycle of an employee. A nil ClockOut
// means the session is still open.
type Session struct {
	ID              string
	EmployeeID      string
	ClockIn         time.Time
	ClockOut        *time.Time
	DurationMinutes *int
	Date            time.Time
}

// IsOpen reports whether the session has no clock-out yet.
func (s Session) IsOpen() bool {
	return s.ClockOut == nil
}
