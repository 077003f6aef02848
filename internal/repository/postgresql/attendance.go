package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.SessionRepository {
	return &attendanceRepository{db: db}
}

const sessionColumns = `id, employee_id, clock_in, clock_out, duration_minutes, date`

// Open implements attendance.SessionRepository.
func (a *attendanceRepository) Open(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	if !isUUID(session.EmployeeID) {
		return attendance.Session{}, employee.ErrEmployeeNotFound
	}

	if session.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Session{}, attendance.NewPersistenceError("generate session id", err)
		}
		session.ID = id.String()
	}

	insert := func(txCtx context.Context) error {
		q := GetQuerier(txCtx, a.db)

		// Serialises concurrent clock-ins of the same employee.
		var employeeID string
		err := q.QueryRow(txCtx, `
			SELECT id FROM employees
			WHERE id = $1 AND deleted = FALSE
			FOR UPDATE
		`, session.EmployeeID).Scan(&employeeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("lock employee: %w", err)
		}

		var open bool
		err = q.QueryRow(txCtx, `
			SELECT EXISTS (
				SELECT 1 FROM time_records
				WHERE employee_id = $1 AND clock_out IS NULL
			)
		`, session.EmployeeID).Scan(&open)
		if err != nil {
			return fmt.Errorf("check open session: %w", err)
		}
		if open {
			return attendance.ErrSessionAlreadyOpen
		}

		_, err = q.Exec(txCtx, `
			INSERT INTO time_records (id, employee_id, clock_in, date)
			VALUES ($1, $2, $3, $4)
		`, session.ID, session.EmployeeID, session.ClockIn, session.Date)
		if err != nil {
			if isUniqueViolation(err, openSessionIndex) {
				return attendance.ErrSessionAlreadyOpen
			}
			return fmt.Errorf("insert time record: %w", err)
		}
		return nil
	}

	var err error
	if inTransaction(ctx) {
		err = insert(ctx)
	} else {
		err = WithTransaction(ctx, a.db, insert)
	}
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.Session{}, err
		}
		return attendance.Session{}, attendance.NewPersistenceError("open session", err)
	}

	return session, nil
}

// FindOpenSession implements attendance.SessionRepository.
func (a *attendanceRepository) FindOpenSession(ctx context.Context, employeeID string) (*attendance.Session, error) {
	if !isUUID(employeeID) {
		return nil, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM time_records
		WHERE employee_id = $1
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	var s attendance.Session
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&s.ID, &s.EmployeeID, &s.ClockIn, &s.ClockOut, &s.DurationMinutes, &s.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, attendance.NewPersistenceError("find open session", err)
	}

	return &s, nil
}

// Close implements attendance.SessionRepository.
func (a *attendanceRepository) Close(ctx context.Context, session attendance.Session) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE time_records
		SET clock_out = $2, duration_minutes = $3
		WHERE id = $1 AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, session.ID, session.ClockOut, session.DurationMinutes)
	if err != nil {
		return attendance.NewPersistenceError("close session", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrSessionAlreadyClosed
	}

	return nil
}

// HasOpenSession implements attendance.SessionRepository.
func (a *attendanceRepository) HasOpenSession(ctx context.Context, employeeID string) (bool, error) {
	if !isUUID(employeeID) {
		return false, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM time_records
			WHERE employee_id = $1 AND clock_out IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, attendance.NewPersistenceError("check open session", err)
	}

	return exists, nil
}

// ListByEmployee implements attendance.SessionRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, date *time.Time) ([]attendance.Session, error) {
	if !isUUID(employeeID) {
		return []attendance.Session{}, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM time_records
		WHERE employee_id = $1
	`
	args := []interface{}{employeeID}
	if date != nil {
		query += ` AND date = $2`
		args = append(args, *date)
	}
	query += ` ORDER BY clock_in DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, attendance.NewPersistenceError("list sessions", err)
	}
	defer rows.Close()

	sessions := make([]attendance.Session, 0)
	for rows.Next() {
		var s attendance.Session
		if err := rows.Scan(&s.ID, &s.EmployeeID, &s.ClockIn, &s.ClockOut, &s.DurationMinutes, &s.Date); err != nil {
			return nil, attendance.NewPersistenceError("scan session", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, attendance.NewPersistenceError("list sessions", err)
	}

	return sessions, nil
}
