package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-backoffice-api/internal/middleware"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"
	"go-backoffice-api/internal/testutil"
	"go-backoffice-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)

	employeeRepo := repository.NewEmployeeRepo(db)
	shiftRepo := repository.NewShiftRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	uspsRepo := repository.NewUSPSRepo(db)

	authService := service.NewAuthService(employeeRepo, jwt.NewManager("test-secret", time.Hour), nil)
	h := Handlers{
		Auth:       NewAuthHandler(authService),
		Dashboard:  NewDashboardHandler(service.NewDashboardService(repository.NewDashboardRepo(db), time.UTC), nil),
		Employee:   NewEmployeeHandler(service.NewEmployeeService(employeeRepo)),
		Shift:      NewShiftHandler(service.NewShiftService(shiftRepo, attendanceRepo, nil, time.UTC)),
		Attendance: NewAttendanceHandler(service.NewAttendanceService(repository.NewShiftStatusRepo(db), attendanceRepo, employeeRepo, shiftRepo, nil, time.UTC)),
		Vendor:     NewVendorHandler(service.NewVendorService(vendorRepo)),
		Expense:    NewExpenseHandler(service.NewExpenseService(repository.NewExpenseRepo(db), vendorRepo)),
		Payroll:    NewPayrollHandler(service.NewPayrollService(repository.NewPayrollRepo(db), employeeRepo, uspsRepo,
			decimal.NewFromInt(2000), service.BonusRule{Threshold: 500, PerLabel: decimal.RequireFromString("0.5")})),
		Order:    NewOrderHandler(service.NewOrderService(repository.NewOrderRepo(db), time.UTC)),
		Reseller: NewResellerHandler(service.NewResellerService(repository.NewResellerRepo(db), nil, time.UTC)),
		USPS:     NewUSPSHandler(service.NewUSPSService(uspsRepo, employeeRepo, nil, time.UTC)),
		Payment:  NewPaymentHandler(service.NewPaymentService(repository.NewPaymentRepo(db), nil)),
	}

	app := fiber.New()
	RegisterRoutes(app, h, middleware.RequireAuth(authService))
	return &testServer{app: app, db: db}
}

func (s *testServer) seed(t *testing.T, email, role string, sessions ...string) *model.Employee {
	t.Helper()
	e := &model.Employee{Email: email, FullName: email, Role: role, AllowedSessions: sessions}
	if err := e.SetPassword("secret123"); err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := repository.NewEmployeeRepo(s.db).Create(e); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return e
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d body %v", email, status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in %v", email, body)
	}
	return token
}

func errorText(body map[string]interface{}) string {
	s, _ := body["error"].(string)
	return s
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)

	cases := []struct {
		name     string
		body     map[string]string
		wantCode int
	}{
		{"ok", map[string]string{"email": "ADMIN@example.com", "password": "secret123"}, 200},
		{"wrong password", map[string]string{"email": "admin@example.com", "password": "nope"}, 401},
		{"unknown email", map[string]string{"email": "who@example.com", "password": "secret123"}, 401},
		{"missing fields", map[string]string{"email": "admin@example.com"}, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := srv.do(t, http.MethodPost, "/api/auth/login", "", tc.body)
			if status != tc.wantCode {
				t.Fatalf("status = %d, want %d (%v)", status, tc.wantCode, body)
			}
		})
	}
}

func TestAuthGates(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	srv.seed(t, "clerk@example.com", model.RoleEmployee, "attendance")
	clerk := srv.login(t, "clerk@example.com")

	if status, _ := srv.do(t, http.MethodGet, "/api/shifts", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("no token: status %d", status)
	}
	if status, _ := srv.do(t, http.MethodGet, "/api/shifts", "garbage", nil); status != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d", status)
	}

	shift := map[string]interface{}{"name": "Day", "start_time": "08:00", "end_time": "16:00"}
	if status, _ := srv.do(t, http.MethodPost, "/api/shifts", clerk, shift); status != http.StatusForbidden {
		t.Fatalf("employee creating shift: status %d", status)
	}
	if status, _ := srv.do(t, http.MethodPost, "/api/attendance/time-to-go", clerk, nil); status != http.StatusForbidden {
		t.Fatalf("employee ending shift: status %d", status)
	}
	if status, body := srv.do(t, http.MethodGet, "/api/vendors", clerk, nil); status != http.StatusForbidden || !strings.Contains(errorText(body), "vendors") {
		t.Fatalf("employee without vendors session: status %d body %v", status, body)
	}
	if status, _ := srv.do(t, http.MethodGet, "/api/attendance/shift-status", clerk, nil); status != http.StatusOK {
		t.Fatalf("employee with attendance session: status %d", status)
	}
}

func TestShiftEndpoints(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	admin := srv.login(t, "admin@example.com")

	for _, path := range []string{"/api/shifts/not-a-uuid", "/api/shifts/" + uuid.NewString()} {
		status, body := srv.do(t, http.MethodGet, path, admin, nil)
		if status != http.StatusNotFound || errorText(body) != "Shift not found" {
			t.Fatalf("GET %s: status %d body %v", path, status, body)
		}
	}

	status, body := srv.do(t, http.MethodPost, "/api/shifts", admin, map[string]interface{}{
		"name": "Night", "start_time": "22:00", "end_time": "06:00", "days": []string{"Monday"},
	})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d body %v", status, body)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["name"] != "Night" || data["start_time"] != "22:00" || data["end_time"] != "06:00" || data["is_overnight"] != true {
		t.Fatalf("created shift = %v", data)
	}

	status, body = srv.do(t, http.MethodPost, "/api/shifts", admin, map[string]interface{}{
		"name": "Broken", "start_time": "09:00", "end_time": "09:00",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("same start/end: status %d body %v", status, body)
	}

	status, body = srv.do(t, http.MethodGet, "/api/shifts?active=true", admin, nil)
	if status != http.StatusOK || body["total"] != float64(1) {
		t.Fatalf("list: status %d body %v", status, body)
	}
}

func TestAttendanceGate(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	srv.seed(t, "clerk@example.com", model.RoleEmployee, "attendance")
	admin := srv.login(t, "admin@example.com")
	clerk := srv.login(t, "clerk@example.com")

	status, body := srv.do(t, http.MethodPost, "/api/attendance/time-to-go", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("time-to-go: status %d body %v", status, body)
	}

	status, body = srv.do(t, http.MethodGet, "/api/attendance/shift-status", clerk, nil)
	if status != http.StatusOK || body["shift_ended"] != true || body["ended_at"] == nil {
		t.Fatalf("shift-status after end: status %d body %v", status, body)
	}

	status, body = srv.do(t, http.MethodPost, "/api/attendance/checkin", clerk, nil)
	if status != http.StatusBadRequest || !strings.Contains(errorText(body), "shift has ended") {
		t.Fatalf("check-in while ended: status %d body %v", status, body)
	}

	if status, body = srv.do(t, http.MethodPost, "/api/attendance/start-shift", admin, nil); status != http.StatusOK {
		t.Fatalf("start-shift: status %d body %v", status, body)
	}
	if status, body = srv.do(t, http.MethodPost, "/api/attendance/checkin", clerk, map[string]string{"note": "morning"}); status != http.StatusCreated {
		t.Fatalf("check-in: status %d body %v", status, body)
	}
	if status, body = srv.do(t, http.MethodPost, "/api/attendance/checkin", clerk, nil); status != http.StatusBadRequest {
		t.Fatalf("second check-in: status %d body %v", status, body)
	}

	status, body = srv.do(t, http.MethodGet, "/api/attendance/shift-status", admin, nil)
	if status != http.StatusOK || body["headcount"] != float64(1) || body["shift_ended"] != false {
		t.Fatalf("shift-status after check-in: status %d body %v", status, body)
	}

	if status, body = srv.do(t, http.MethodPost, "/api/attendance/checkout", clerk, nil); status != http.StatusOK {
		t.Fatalf("check-out: status %d body %v", status, body)
	}
}

func TestVendorSoftDelete(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	admin := srv.login(t, "admin@example.com")

	status, body := srv.do(t, http.MethodPost, "/api/vendors", admin, map[string]string{"name": "Paper Co", "category": "supplies"})
	if status != http.StatusCreated {
		t.Fatalf("create vendor: status %d body %v", status, body)
	}
	data, _ := body["data"].(map[string]interface{})
	id, _ := data["id"].(string)

	if status, body = srv.do(t, http.MethodDelete, "/api/vendors/"+id, admin, nil); status != http.StatusOK {
		t.Fatalf("delete: status %d body %v", status, body)
	}
	if status, body = srv.do(t, http.MethodDelete, "/api/vendors/"+id, admin, nil); status != http.StatusNotFound {
		t.Fatalf("second delete: status %d body %v", status, body)
	}

	status, body = srv.do(t, http.MethodGet, "/api/vendors", admin, nil)
	if list, _ := body["data"].([]interface{}); status != http.StatusOK || len(list) != 0 {
		t.Fatalf("list after delete: status %d body %v", status, body)
	}
	status, body = srv.do(t, http.MethodGet, "/api/vendors?include_inactive=true", admin, nil)
	if list, _ := body["data"].([]interface{}); status != http.StatusOK || len(list) != 1 {
		t.Fatalf("list with inactive: status %d body %v", status, body)
	}
}

// doRaw issues a GET and returns the undecoded response.
func (s *testServer) doRaw(t *testing.T, path, token string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestDashboardActivityDays(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	admin := srv.login(t, "admin@example.com")

	cases := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"?days=3", 3},
		{"?days=90", 90},
		{"?days=500", 90},
		{"?days=0", 7},
		{"?days=-4", 7},
	}
	for _, tc := range cases {
		t.Run("days"+tc.query, func(t *testing.T) {
			status, body := srv.do(t, http.MethodGet, "/api/dashboard/activity"+tc.query, admin, nil)
			if status != http.StatusOK {
				t.Fatalf("status %d body %v", status, body)
			}
			data, _ := body["data"].([]interface{})
			if body["period"] != float64(tc.want) || len(data) != tc.want {
				t.Fatalf("period = %v, buckets = %d, want %d", body["period"], len(data), tc.want)
			}
			first, _ := data[0].(map[string]interface{})
			if first["check_ins"] != float64(0) || first["usps_labels"] != float64(0) || first["orders"] != float64(0) {
				t.Fatalf("empty day = %v", first)
			}
		})
	}

	status, body := srv.do(t, http.MethodGet, "/api/dashboard/stats", admin, nil)
	if status != http.StatusOK || body["online_employees"] != float64(0) {
		t.Fatalf("stats: status %d body %v", status, body)
	}
}

func TestExpenseSummaryAndExport(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	admin := srv.login(t, "admin@example.com")

	for _, e := range []map[string]string{
		{"category": "rent", "amount": "100", "expense_date": "2026-09-01", "description": "September"},
		{"category": "supplies", "amount": "50", "expense_date": "2026-10-02", "description": "Paper, toner"},
	} {
		if status, body := srv.do(t, http.MethodPost, "/api/expenses", admin, e); status != http.StatusCreated {
			t.Fatalf("create expense: status %d body %v", status, body)
		}
	}

	status, body := srv.do(t, http.MethodGet, "/api/expenses/summary", admin, nil)
	if status != http.StatusOK {
		t.Fatalf("summary: status %d body %v", status, body)
	}
	summary, _ := body["data"].(map[string]interface{})
	byCategory, _ := summary["by_category"].(map[string]interface{})
	byMonth, _ := summary["by_month"].(map[string]interface{})
	if summary["total"] != "150" || summary["count"] != float64(2) || byCategory["rent"] != "100" || byMonth["2026-10"] != "50" {
		t.Fatalf("summary = %v", summary)
	}

	cases := []struct {
		name        string
		query       string
		wantCode    int
		contentType string
		filename    string
	}{
		{"default csv", "", http.StatusOK, "text/csv", "expenses.csv"},
		{"xlsx", "?format=xlsx", http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "expenses.xlsx"},
		{"filtered csv", "?format=csv&from=2026-10-01&to=2026-10-31", http.StatusOK, "text/csv", "expenses.csv"},
		{"unsupported", "?format=pdf", http.StatusBadRequest, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := srv.doRaw(t, "/api/expenses/export"+tc.query, admin)
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("status %d body %s", resp.StatusCode, raw)
			}
			if tc.wantCode != http.StatusOK {
				return
			}
			if got := resp.Header.Get(fiber.HeaderContentType); got != tc.contentType {
				t.Fatalf("content type = %q", got)
			}
			if got := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(got, `filename="`+tc.filename+`"`) {
				t.Fatalf("content disposition = %q", got)
			}
			if len(raw) == 0 {
				t.Fatalf("empty export")
			}
		})
	}

	_, raw := srv.doRaw(t, "/api/expenses/export?from=2026-10-01&to=2026-10-31", admin)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 || lines[0] != "Date,Category,Vendor,Description,Amount,Payment Method,Reference,Status" {
		t.Fatalf("csv = %q", raw)
	}
	if !strings.Contains(lines[1], `"Paper, toner"`) {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestAttendanceValidationAndScope(t *testing.T) {
	srv := newTestServer(t)
	srv.seed(t, "admin@example.com", model.RoleAdmin)
	alice := srv.seed(t, "alice@example.com", model.RoleEmployee, "attendance")
	bob := srv.seed(t, "bob@example.com", model.RoleEmployee, "attendance")
	admin := srv.login(t, "admin@example.com")
	token := srv.login(t, "alice@example.com")

	checkIns := []struct {
		name     string
		body     map[string]string
		wantCode int
	}{
		{"bad employee id", map[string]string{"employee_id": "nope"}, http.StatusBadRequest},
		{"note too long", map[string]string{"note": strings.Repeat("x", 501)}, http.StatusBadRequest},
		{"other employee", map[string]string{"employee_id": bob.ID.String()}, http.StatusForbidden},
		{"ok", map[string]string{"note": "on site"}, http.StatusCreated},
	}
	for _, tc := range checkIns {
		t.Run("checkin "+tc.name, func(t *testing.T) {
			status, body := srv.do(t, http.MethodPost, "/api/attendance/checkin", token, tc.body)
			if status != tc.wantCode {
				t.Fatalf("status = %d, want %d (%v)", status, tc.wantCode, body)
			}
		})
	}

	reads := []struct {
		name     string
		path     string
		token    string
		wantCode int
	}{
		{"global", "/api/attendance/shift-status", token, http.StatusOK},
		{"own", "/api/attendance/shift-status/" + alice.ID.String(), token, http.StatusOK},
		{"other employee", "/api/attendance/shift-status/" + bob.ID.String(), token, http.StatusForbidden},
		{"admin", "/api/attendance/shift-status/" + bob.ID.String(), admin, http.StatusOK},
	}
	for _, tc := range reads {
		t.Run("shift-status "+tc.name, func(t *testing.T) {
			status, body := srv.do(t, http.MethodGet, tc.path, tc.token, nil)
			if status != tc.wantCode {
				t.Fatalf("status = %d, want %d (%v)", status, tc.wantCode, body)
			}
		})
	}
}
