package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAuthService struct{}

func (fakeAuthService) LoginWithEmployeeCode(ctx context.Context, req auth.LoginEmployeeCodeRequest) (auth.EmployeeLoginResponse, error) {
	if req.EmployeeCode != "EMP001" {
		return auth.EmployeeLoginResponse{}, auth.ErrInvalidEmployeeCode
	}
	return auth.EmployeeLoginResponse{TokenResponse: auth.TokenResponse{AccessToken: "token"}}, nil
}

func (fakeAuthService) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.AdminLoginResponse, error) {
	return auth.AdminLoginResponse{}, auth.ErrInvalidCredentials
}

type fakeEmployeeService struct {
	created []employee.CreateEmployeeRequest
}

func (f *fakeEmployeeService) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "emp-1", EmployeeCode: "EMP001", Name: "Ada"}}, nil
}

func (f *fakeEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	f.created = append(f.created, req)
	return employee.EmployeeResponse{ID: "emp-2", EmployeeCode: req.EmployeeCode, Name: req.Name}, nil
}

func (f *fakeEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if id != "emp-1" {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

type fakeAttendanceService struct {
	open map[string]bool
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}
	if f.open[req.EmployeeID] {
		return attendance.SessionResponse{}, attendance.ErrSessionAlreadyOpen
	}
	f.open[req.EmployeeID] = true
	return attendance.SessionResponse{ID: "s-1", EmployeeID: req.EmployeeID, Active: true}, nil
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, req attendance.ClockRequest) (*attendance.SessionResponse, error) {
	if !f.open[req.EmployeeID] {
		return nil, nil
	}
	delete(f.open, req.EmployeeID)
	return &attendance.SessionResponse{ID: "s-1", EmployeeID: req.EmployeeID}, nil
}

func (f *fakeAttendanceService) IsActive(ctx context.Context, employeeID string) (bool, error) {
	return f.open[employeeID], nil
}

func (f *fakeAttendanceService) ListSessions(ctx context.Context, filter attendance.SessionFilter) ([]attendance.SessionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return []attendance.SessionResponse{}, nil
}

func (f *fakeAttendanceService) Subscribe(ctx context.Context, employeeID string) (<-chan attendance.SessionEvent, func()) {
	ch := make(chan attendance.SessionEvent, 1)
	ch <- attendance.SessionEvent{
		Event: attendance.EventClockIn,
		Data:  attendance.SessionResponse{ID: "s-1", EmployeeID: employeeID, Active: true},
	}
	close(ch)
	return ch, func() {}
}

type fakeReportService struct{}

func (fakeReportService) Generate(ctx context.Context, req report.ReportRequest) (report.ReportResponse, error) {
	_, rng, err := req.Resolve()
	if err != nil {
		return report.ReportResponse{}, err
	}
	return report.ReportResponse{
		Type:      req.Type,
		StartDate: rng.Start.Format(report.DateLayout),
		EndDate:   rng.End.Format(report.DateLayout),
		Rows:      []report.RowResponse{},
	}, nil
}

func (fakeReportService) Export(ctx context.Context, req report.ReportRequest) (report.ExportFile, error) {
	return report.ExportFile{
		Filename:    "time-report-2024-03-05-daily.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("xlsx"),
	}, nil
}

func (fakeReportService) SendEmail(ctx context.Context, req report.EmailReportRequest) error {
	return report.ErrNoRecords
}

func (fakeReportService) SendDaily(ctx context.Context) error { return nil }

type routerFixture struct {
	handler    http.Handler
	jwtService jwt.Service
	attendance *fakeAttendanceService
}

func newRouterFixture(t *testing.T, rateLimit int) *routerFixture {
	t.Helper()

	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	attendanceSvc := &fakeAttendanceService{open: map[string]bool{}}

	router := NewRouter(
		config.AppConfig{Env: "test", CORSAllowedOrigins: []string{"*"}, RateLimitPerMinute: rateLimit},
		jwtService,
		NewAuthHandler(fakeAuthService{}),
		NewEmployeeHandler(&fakeEmployeeService{}),
		NewAttendanceHandler(attendanceSvc),
		NewReportHandler(fakeReportService{}),
	)

	return &routerFixture{handler: router, jwtService: jwtService, attendance: attendanceSvc}
}

func (f *routerFixture) token(t *testing.T, role jwt.Role, employeeID string) string {
	t.Helper()
	var id *string
	if employeeID != "" {
		id = &employeeID
	}
	token, _, err := f.jwtService.GenerateAccessToken("subject", id, role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestLoginHandlers(t *testing.T) {
	f := newRouterFixture(t, 100)

	t.Run("employee code login", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": "EMP001"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeResponse(t, rec).Success)
	})

	t.Run("unknown employee code", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": "NOPE"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("admin bad credentials", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{"username": "admin", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLoginRateLimit(t *testing.T) {
	f := newRouterFixture(t, 2)

	for i := 0; i < 2; i++ {
		rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": "EMP001"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": "EMP001"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestEmployeeRoutesRequireAdmin(t *testing.T) {
	f := newRouterFixture(t, 100)

	rec := f.do(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/employees", f.token(t, jwt.RoleEmployee, "emp-1"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := f.token(t, jwt.RoleAdmin, "")

	rec = f.do(t, http.MethodGet, "/api/v1/employees", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.TotalItems)

	rec = f.do(t, http.MethodPost, "/api/v1/employees", admin, map[string]string{"employee_code": "EMP002", "name": "Grace"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/employees", admin, map[string]string{"employee_code": "E", "name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/employees/emp-1", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/employees/missing", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClockRoutes(t *testing.T) {
	f := newRouterFixture(t, 100)
	employeeToken := f.token(t, jwt.RoleEmployee, "emp-1")

	t.Run("employee clocks in for themselves without a body", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/time/clock-in", employeeToken, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, f.attendance.open["emp-1"])
	})

	t.Run("second clock-in conflicts", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/time/clock-in", employeeToken, map[string]string{"employee_id": "emp-1"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("employee cannot clock in someone else", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/time/clock-in", employeeToken, map[string]string{"employee_id": "emp-2"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin must name the employee", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/time/clock-in", f.token(t, jwt.RoleAdmin, ""), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("active reports the open session", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/time/active/emp-1", employeeToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data, ok := decodeResponse(t, rec).Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, data["active"])
		assert.Equal(t, "emp-1", data["employee_id"])
	})

	t.Run("active for another employee is forbidden", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/time/active/emp-2", employeeToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("clock-out closes then becomes a no-op", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/time/clock-out", employeeToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, decodeResponse(t, rec).Data)

		rec = f.do(t, http.MethodPost, "/api/v1/time/clock-out", employeeToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decodeResponse(t, rec).Data)
	})

	t.Run("list rejects a malformed date", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/time/emp-1?date=2024-13-01", employeeToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestReportRoutes(t *testing.T) {
	f := newRouterFixture(t, 100)
	admin := f.token(t, jwt.RoleAdmin, "")

	t.Run("employees cannot read reports", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports?date=2024-03-05", f.token(t, jwt.RoleEmployee, "emp-1"), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("weekly range in meta", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports?date=2024-03-06&type=weekly", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, "2024-03-04", resp.Meta.StartDate)
		assert.Equal(t, "2024-03-10", resp.Meta.EndDate)
	})

	t.Run("unknown type", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports?date=2024-03-06&type=yearly", admin, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports?date=06-03-2024", admin, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("export is an attachment", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/reports/export?date=2024-03-05", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "time-report-2024-03-05-daily.xlsx")
		assert.Equal(t, "xlsx", rec.Body.String())
	})

	t.Run("email with no records", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/reports/email", admin, map[string]string{"date": "2024-03-05"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSessionEventStream(t *testing.T) {
	f := newRouterFixture(t, 100)

	t.Run("token in query string", func(t *testing.T) {
		token := f.token(t, jwt.RoleEmployee, "emp-1")
		rec := f.do(t, http.MethodGet, "/api/v1/time/events?jwt="+token, "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "event: connected")
		assert.Contains(t, body, "event: clock_in")
		assert.Contains(t, body, `"employee_id":"emp-1"`)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/time/events", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
