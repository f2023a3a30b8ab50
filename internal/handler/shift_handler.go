package handler

import (
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ShiftHandler struct {
	shiftService service.ShiftService
}

func NewShiftHandler(shiftService service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// shiftID parses :id; a malformed id is reported the same way as a missing shift.
func shiftID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return uuid.Nil, false
	}
	return id, true
}

func shiftNotFound(c *fiber.Ctx) error {
	return c.Status(404).JSON(fiber.Map{"error": "Shift not found"})
}

// CreateShift handles shift creation
// POST /api/shifts
// Only admins can create shifts (enforced by middleware)
func (h *ShiftHandler) CreateShift(c *fiber.Ctx) error {
	var req service.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	// Get creator from context (set by auth middleware)
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	shift, err := h.shiftService.CreateShift(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Shift created successfully",
		"data":    shift.ToResponse(),
	})
}

// UpdateShift handles partial shift update
// PUT /api/shifts/:id
func (h *ShiftHandler) UpdateShift(c *fiber.Ctx) error {
	id, ok := shiftID(c)
	if !ok {
		return shiftNotFound(c)
	}

	var req service.UpdateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	shift, err := h.shiftService.UpdateShift(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Shift updated successfully",
		"data":    shift.ToResponse(),
	})
}

// DeleteShift soft-deletes a shift and releases its employees
// DELETE /api/shifts/:id
func (h *ShiftHandler) DeleteShift(c *fiber.Ctx) error {
	id, ok := shiftID(c)
	if !ok {
		return shiftNotFound(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.shiftService.DeleteShift(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shift deleted successfully"})
}

// GetShift handles getting a single shift by ID with its assigned employees
// GET /api/shifts/:id
func (h *ShiftHandler) GetShift(c *fiber.Ctx) error {
	id, ok := shiftID(c)
	if !ok {
		return shiftNotFound(c)
	}

	shift, err := h.shiftService.GetShiftByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": shift.ToResponse()})
}

// GetShifts lists shifts
// GET /api/shifts?active=true
func (h *ShiftHandler) GetShifts(c *fiber.Ctx) error {
	activeOnly := queryBool(c, "active")

	shifts, err := h.shiftService.GetShifts(activeOnly)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":        shifts,
		"active_only": activeOnly,
		"total":       len(shifts),
	})
}

// AssignEmployees moves the given employees into the shift
// POST /api/shifts/:id/assign-employees
func (h *ShiftHandler) AssignEmployees(c *fiber.Ctx) error {
	id, ok := shiftID(c)
	if !ok {
		return shiftNotFound(c)
	}

	var req service.ShiftEmployeesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	shift, err := h.shiftService.AssignEmployees(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employees assigned successfully",
		"data":    shift.ToResponse(),
	})
}

// UnassignEmployees removes the given employees from the shift
// POST /api/shifts/:id/unassign-employees
func (h *ShiftHandler) UnassignEmployees(c *fiber.Ctx) error {
	id, ok := shiftID(c)
	if !ok {
		return shiftNotFound(c)
	}

	var req service.ShiftEmployeesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	shift, err := h.shiftService.UnassignEmployees(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Employees unassigned successfully",
		"data":    shift.ToResponse(),
	})
}

// GetUnassignedEmployees lists active employees without a shift
// GET /api/shifts/unassigned-employees
func (h *ShiftHandler) GetUnassignedEmployees(c *fiber.Ctx) error {
	employees, err := h.shiftService.GetUnassignedEmployees()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  employees,
		"total": len(employees),
	})
}

// GetShiftStats returns today's headcount and punctuality of one shift
// GET /api/shifts/:id/stats
func (h *ShiftHandler) GetShiftStats(c *fiber.Ctx) error {
	id, ok := shiftID(c)
	if !ok {
		return shiftNotFound(c)
	}

	stats, err := h.shiftService.GetShiftStats(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": stats})
}

// GetAllShiftStats returns stats of every active shift
// GET /api/shifts/stats
func (h *ShiftHandler) GetAllShiftStats(c *fiber.Ctx) error {
	stats, err := h.shiftService.GetAllShiftStats()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  stats,
		"total": len(stats),
	})
}
