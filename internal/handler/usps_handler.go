package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type USPSHandler struct {
	uspsService service.USPSService
}

func NewUSPSHandler(uspsService service.USPSService) *USPSHandler {
	return &USPSHandler{uspsService: uspsService}
}

func uspsFilter(c *fiber.Ctx) (repository.USPSFilter, error) {
	dates, err := dateRange(c)
	if err != nil {
		return repository.USPSFilter{}, err
	}
	employeeID, err := service.ParseOptionalID(c.Query("employee_id"))
	if err != nil {
		return repository.USPSFilter{}, err
	}
	return repository.USPSFilter{
		DateRange:       dates,
		EmployeeID:      employeeID,
		IncludeInactive: queryBool(c, "include_inactive"),
	}, nil
}

// ============ LABELS ============

// POST /api/usps-labels
func (h *USPSHandler) CreateLabel(c *fiber.Ctx) error {
	var req service.USPSLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	label, err := h.uspsService.CreateLabel(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Label entry created successfully", "data": label})
}

// PUT /api/usps-labels/:id
func (h *USPSHandler) UpdateLabel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid label ID"})
	}
	var req service.USPSLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	label, err := h.uspsService.UpdateLabel(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Label entry updated successfully", "data": label})
}

// DELETE /api/usps-labels/:id
func (h *USPSHandler) DeleteLabel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid label ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uspsService.DeleteLabel(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Label entry deleted successfully"})
}

// GET /api/usps-labels/:id
func (h *USPSHandler) GetLabel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid label ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	label, err := h.uspsService.GetLabel(id, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": label})
}

// GET /api/usps-labels?employee_id=&from=&to=
func (h *USPSHandler) GetLabels(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	filter, err := uspsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	labels, err := h.uspsService.GetLabels(filter, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": labels, "total": len(labels)})
}

// GET /api/usps-labels/summary
func (h *USPSHandler) GetSummary(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	filter, err := uspsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.uspsService.Summary(filter, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": summary})
}

// GET /api/usps-labels/export?format=csv|xlsx
func (h *USPSHandler) Export(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	filter, err := uspsFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	file, err := h.uspsService.Export(filter, c.Query("format"), actor)
	if err != nil {
		return respondError(c, err)
	}

	return sendFile(c, file)
}

// ============ GOALS ============

// POST /api/usps-goals
func (h *USPSHandler) CreateGoal(c *fiber.Ctx) error {
	var req service.USPSGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	goal, err := h.uspsService.CreateGoal(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Goal created successfully", "data": goal})
}

// PUT /api/usps-goals/:id
func (h *USPSHandler) UpdateGoal(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid goal ID"})
	}
	var req service.USPSGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	goal, err := h.uspsService.UpdateGoal(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Goal updated successfully", "data": goal})
}

// DELETE /api/usps-goals/:id
func (h *USPSHandler) DeleteGoal(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid goal ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.uspsService.DeleteGoal(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Goal deleted successfully"})
}

// GET /api/usps-goals/:id
func (h *USPSHandler) GetGoal(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid goal ID"})
	}

	goal, err := h.uspsService.GetGoal(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": goal})
}

// GET /api/usps-goals?period=YYYY-MM
func (h *USPSHandler) GetGoals(c *fiber.Ctx) error {
	goals, err := h.uspsService.GetGoals(c.Query("period"), queryBool(c, "include_inactive"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": goals, "total": len(goals)})
}

// GET /api/usps-goals/progress?period=YYYY-MM
func (h *USPSHandler) GetProgress(c *fiber.Ctx) error {
	period := c.Query("period")
	if period == "" {
		return c.Status(400).JSON(fiber.Map{"error": "period is required (YYYY-MM)"})
	}

	progress, err := h.uspsService.Progress(c.UserContext(), period)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"period": period, "data": progress})
}
