package postgresql

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"

	openSessionIndex  = "time_records_one_open_per_employee"
	employeeCodeIndex = "employees_employee_code_key"
)

// isUniqueViolation reports whether err is a unique_violation, optionally on
// a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// isUUID guards id columns: Postgres rejects malformed uuid text with an
// error instead of matching no rows.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}
