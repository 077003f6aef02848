package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ast = time.FixedZone("UTC+03:00", 3*60*60)

func createEmployee(t *testing.T, db *database.DB, code, name string) employee.Employee {
	t.Helper()
	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		Name:         name,
	})
	require.NoError(t, err)
	return emp
}

func TestAttendanceRepository_OpenAndClose(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	emp := createEmployee(t, db, "EMP001", "Jane")

	in := time.Date(2024, 3, 15, 9, 0, 0, 0, ast)
	opened, err := repo.Open(ctx, attendance.NewOpenSession(emp.ID, in, ast))
	require.NoError(t, err)
	require.NotEmpty(t, opened.ID)

	active, err := repo.HasOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, active)

	_, err = repo.Open(ctx, attendance.NewOpenSession(emp.ID, in.Add(time.Minute), ast))
	assert.ErrorIs(t, err, attendance.ErrSessionAlreadyOpen)

	found, err := repo.FindOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, opened.ID, found.ID)

	closed, err := found.Close(time.Date(2024, 3, 15, 17, 29, 59, 0, ast))
	require.NoError(t, err)
	require.NoError(t, repo.Close(ctx, closed))
	assert.ErrorIs(t, repo.Close(ctx, closed), attendance.ErrSessionAlreadyClosed)

	found, err = repo.FindOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	day, _ := report.ParseDate("2024-03-15")
	sessions, err := repo.ListByEmployee(ctx, emp.ID, &day)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 509, *sessions[0].DurationMinutes)
}

func TestAttendanceRepository_ConcurrentOpen(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	emp := createEmployee(t, db, "EMP002", "John")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	now := time.Now()
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Open(ctx, attendance.NewOpenSession(emp.ID, now, ast))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, attendance.ErrSessionAlreadyOpen):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
}

func TestAttendanceRepository_OpenUnknownEmployee(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.Open(context.Background(), attendance.NewOpenSession("0190f3a2-0000-7000-8000-000000000000", time.Now(), ast))

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	emp := createEmployee(t, db, "EMP010", "Alice")

	_, err := repo.Create(ctx, employee.Employee{EmployeeCode: "EMP010", Name: "Duplicate"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	got, err := repo.GetByEmployeeCode(ctx, "EMP010")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, got.ID)

	_, err = postgresql.NewAttendanceRepository(db).Open(ctx, attendance.NewOpenSession(emp.ID, time.Now(), ast))
	require.NoError(t, err)

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Active)

	require.NoError(t, repo.SoftDelete(ctx, emp.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, emp.ID), employee.ErrEmployeeNotFound)

	_, err = repo.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	exists, err := repo.ExistsByCode(ctx, "EMP010")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReportRepository_ListRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	sessions := postgresql.NewAttendanceRepository(db)
	bob := createEmployee(t, db, "EMP021", "Bob")
	amy := createEmployee(t, db, "EMP020", "Amy")

	for _, in := range []struct {
		emp employee.Employee
		at  time.Time
	}{
		{bob, time.Date(2024, 3, 11, 9, 0, 0, 0, ast)},
		{amy, time.Date(2024, 3, 11, 10, 0, 0, 0, ast)},
		{amy, time.Date(2024, 3, 18, 9, 0, 0, 0, ast)},
	} {
		opened, err := sessions.Open(ctx, attendance.NewOpenSession(in.emp.ID, in.at, ast))
		require.NoError(t, err)
		closed, err := opened.Close(in.at.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, sessions.Close(ctx, closed))
	}

	ref, _ := report.ParseDate("2024-03-15")
	week, err := report.Resolve(ref, report.Weekly, nil)
	require.NoError(t, err)

	rows, err := postgresql.NewReportRepository(db).ListRows(ctx, week)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Amy", rows[0].EmployeeName)
	assert.Equal(t, "Bob", rows[1].EmployeeName)
	assert.Equal(t, 60, *rows[0].DurationMinutes)
}
