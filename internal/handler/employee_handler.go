package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployee handles employee creation
// POST /api/employees
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employee, err := h.employeeService.CreateEmployee(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Employee created successfully",
		"data":    employee.ToResponse(),
	})
}

// UpdateEmployee handles profile, bank, salary and role changes
// PUT /api/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var req service.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employee, err := h.employeeService.UpdateEmployee(employeeID, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employee updated successfully",
		"data":    employee.ToResponse(),
	})
}

// DeleteEmployee deactivates an employee and releases their shift
// DELETE /api/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.employeeService.DeleteEmployee(employeeID, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Employee deactivated successfully"})
}

// GetEmployees returns the employee directory
// GET /api/employees?role=&search=&include_inactive=
func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.employeeService.GetEmployees(repository.EmployeeFilter{
		Role:            c.Query("role"),
		Search:          c.Query("search"),
		IncludeInactive: queryBool(c, "include_inactive"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  employees,
		"total": len(employees),
	})
}

// GetEmployee returns one employee; non-admins may only read themselves
// GET /api/employees/:id
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employee, err := h.employeeService.GetEmployee(employeeID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": employee.ToResponse()})
}

// GetMe returns the authenticated employee
// GET /api/employees/me
func (h *EmployeeHandler) GetMe(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employee, err := h.employeeService.GetEmployee(actor.ID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": employee.ToResponse()})
}

// SetSessions replaces the employee's allowed sessions
// PUT /api/employees/:id/sessions
func (h *EmployeeHandler) SetSessions(c *fiber.Ctx) error {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var req struct {
		Sessions []string `json:"sessions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employee, err := h.employeeService.SetSessions(employeeID, req.Sessions, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Sessions updated successfully",
		"data":    employee.ToResponse(),
	})
}

// ToggleSession flips one session tag on or off
// POST /api/employees/:id/sessions/toggle
func (h *EmployeeHandler) ToggleSession(c *fiber.Ctx) error {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var req struct {
		Session string `json:"session"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if req.Session == "" {
		return c.Status(400).JSON(fiber.Map{"error": "session is required"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employee, err := h.employeeService.ToggleSession(employeeID, req.Session, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Session toggled successfully",
		"data":    employee.ToResponse(),
	})
}
