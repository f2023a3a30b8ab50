package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// expenseFilter reads from, to, category, status, vendor_id and include_inactive.
func expenseFilter(c *fiber.Ctx) (repository.ExpenseFilter, error) {
	var filter repository.ExpenseFilter
	dates, err := dateRange(c)
	if err != nil {
		return filter, err
	}
	vendorID, err := service.ParseOptionalID(c.Query("vendor_id"))
	if err != nil {
		return filter, err
	}
	filter.DateRange = dates
	filter.VendorID = vendorID
	filter.Category = c.Query("category")
	filter.Status = c.Query("status")
	filter.IncludeInactive = queryBool(c, "include_inactive")
	return filter, nil
}

// POST /api/expenses
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var req service.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	expense, err := h.expenseService.CreateExpense(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Expense created successfully", "data": expense})
}

// PUT /api/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}
	var req service.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	expense, err := h.expenseService.UpdateExpense(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Expense updated successfully", "data": expense})
}

// DELETE /api/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.expenseService.DeleteExpense(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}

// GET /api/expenses/:id
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	expense, err := h.expenseService.GetExpense(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": expense})
}

// GET /api/expenses
func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	filter, err := expenseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	expenses, err := h.expenseService.GetExpenses(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": expenses, "total": len(expenses)})
}

// GET /api/expenses/summary
func (h *ExpenseHandler) GetSummary(c *fiber.Ctx) error {
	filter, err := expenseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.expenseService.Summary(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": summary})
}

// GET /api/expenses/export?format=csv|xlsx
func (h *ExpenseHandler) Export(c *fiber.Ctx) error {
	filter, err := expenseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	file, err := h.expenseService.Export(filter, c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}

	return sendFile(c, file)
}
