package attendance

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

type ClockRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        *string `json:"clock_out"`
	DurationMinutes *int    `json:"duration_minutes"`
	Active          bool    `json:"active"`
}

type SessionFilter struct {
	EmployeeID string  `json:"employee_id"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD
}

func (f *SessionFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

const (
	EventClockIn  = "clock_in"
	EventClockOut = "clock_out"
)

// SessionEvent is pushed to live subscribers when a session opens or closes.
type SessionEvent struct {
	Event string          `json:"event"`
	Data  SessionResponse `json:"data"`
}
