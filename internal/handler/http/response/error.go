package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var persistenceErr *attendance.PersistenceError

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidEmployeeCode):
		Unauthorized(w, "Invalid employee code")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionAlreadyOpen):
		Conflict(w, "Employee is already clocked in")
	case errors.Is(err, attendance.ErrForbidden):
		Forbidden(w, "You can only access your own time records")
	case errors.As(err, &persistenceErr):
		slog.Error("persistence failure", "op", persistenceErr.Op, "error", persistenceErr.Err)
		InternalServerError(w, "Failed to access time records")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidReportType):
		BadRequest(w, report.ErrInvalidReportType.Error(), map[string]string{"type": err.Error()})
	case errors.Is(err, report.ErrInvalidDate):
		BadRequest(w, "Invalid date, expected YYYY-MM-DD", map[string]string{"date": err.Error()})
	case errors.Is(err, report.ErrNoRecords):
		NotFound(w, "No records for the selected period")
	case errors.Is(err, report.ErrNoRecipient):
		BadRequest(w, "No report recipient configured", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
