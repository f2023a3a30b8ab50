package middleware

import (
	"strings"

	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by RequireAuth
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
	LocalEmployee = "employee"
)

// RequireAuth is middleware that validates the bearer token and loads the active employee into context
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		// Validate token and check the employee is still active
		employee, err := authService.Authenticate(parts[1])
		if err != nil {
			if err == service.ErrEmployeeInactive {
				return c.Status(401).JSON(fiber.Map{"error": "Employee account is inactive"})
			}
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Set employee info in context for downstream handlers
		c.Locals(LocalUserID, employee.ID.String())
		c.Locals(LocalUserRole, employee.Role)
		c.Locals(LocalEmployee, employee)

		return c.Next()
	}
}

// RequireRole checks if the authenticated employee has one of the given roles
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalUserRole).(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires role " + strings.Join(roles, " or "),
		})
	}
}

// RequireAdmin is RequireRole(model.RoleAdmin).
func RequireAdmin() fiber.Handler {
	return RequireRole(model.RoleAdmin)
}

// RequireSession checks the employee may open the given back-office tab. Admins always pass.
func RequireSession(tag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employee, ok := c.Locals(LocalEmployee).(*model.Employee)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No session access found"})
		}

		if employee.HasSession(tag) {
			return c.Next()
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + tag + "' session access",
		})
	}
}
