package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type stubAuth struct {
	service.AuthService
	employees map[string]*model.Employee
}

func (s *stubAuth) Authenticate(token string) (*model.Employee, error) {
	if token == "inactive" {
		return nil, service.ErrEmployeeInactive
	}
	e, ok := s.employees[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return e, nil
}

func newEmployee(role string, sessions ...string) *model.Employee {
	e := &model.Employee{Role: role, AllowedSessions: sessions}
	e.ID = uuid.New()
	e.IsActive = true
	return e
}

func TestMiddlewareChain(t *testing.T) {
	auth := &stubAuth{employees: map[string]*model.Employee{
		"admin": newEmployee(model.RoleAdmin),
		"clerk": newEmployee(model.RoleEmployee, "orders"),
	}}

	app := fiber.New()
	app.Get("/me", RequireAuth(auth), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserRole).(string))
	})
	app.Get("/admin", RequireAuth(auth), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	app.Get("/orders", RequireAuth(auth), RequireSession("orders"), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	app.Get("/payroll", RequireAuth(auth), RequireSession("payroll"), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/me", "", 401},
		{"wrong scheme", "/me", "Token admin", 401},
		{"unknown token", "/me", "Bearer nope", 401},
		{"inactive employee", "/me", "Bearer inactive", 401},
		{"valid token", "/me", "Bearer clerk", 200},
		{"admin route as employee", "/admin", "Bearer clerk", 403},
		{"admin route as admin", "/admin", "Bearer admin", 200},
		{"granted session", "/orders", "Bearer clerk", 200},
		{"missing session", "/payroll", "Bearer clerk", 403},
		{"admin bypasses sessions", "/payroll", "Bearer admin", 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
