package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PayrollHandler struct {
	payrollService service.PayrollService
}

func NewPayrollHandler(payrollService service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

func payrollFilter(c *fiber.Ctx) (repository.PayrollFilter, error) {
	employeeID, err := service.ParseOptionalID(c.Query("employee_id"))
	if err != nil {
		return repository.PayrollFilter{}, err
	}
	return repository.PayrollFilter{
		EmployeeID:      employeeID,
		Period:          c.Query("period"),
		Status:          c.Query("status"),
		IncludeInactive: queryBool(c, "include_inactive"),
	}, nil
}

// POST /api/payroll
func (h *PayrollHandler) CreatePayroll(c *fiber.Ctx) error {
	var req service.PayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	payroll, err := h.payrollService.CreatePayroll(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Payroll created successfully", "data": payroll})
}

// PUT /api/payroll/:id
func (h *PayrollHandler) UpdatePayroll(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payroll ID"})
	}
	var req service.PayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	payroll, err := h.payrollService.UpdatePayroll(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payroll updated successfully", "data": payroll})
}

// DELETE /api/payroll/:id
func (h *PayrollHandler) DeletePayroll(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payroll ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.payrollService.DeletePayroll(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payroll deleted successfully"})
}

// GET /api/payroll/:id
func (h *PayrollHandler) GetPayroll(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payroll ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	payroll, err := h.payrollService.GetPayroll(id, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": payroll})
}

// GET /api/payroll?employee_id=&period=&status=
// Employees only ever see their own payroll.
func (h *PayrollHandler) GetPayrolls(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	filter, err := payrollFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	payrolls, err := h.payrollService.GetPayrolls(filter, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": payrolls, "total": len(payrolls)})
}

// Calculate runs the salary calculator and optionally stores a draft
// POST /api/payroll/calculate
func (h *PayrollHandler) Calculate(c *fiber.Ctx) error {
	var req service.CalculatePayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	result, err := h.payrollService.Calculate(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": result})
}

// POST /api/payroll/:id/mark-paid
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid payroll ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	payroll, err := h.payrollService.MarkPaid(id, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payroll marked as paid", "data": payroll})
}

// GET /api/payroll/export?format=csv|xlsx
func (h *PayrollHandler) Export(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	filter, err := payrollFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	file, err := h.payrollService.Export(filter, c.Query("format"), actor)
	if err != nil {
		return respondError(c, err)
	}

	return sendFile(c, file)
}
