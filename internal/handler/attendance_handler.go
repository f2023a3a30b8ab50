package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// optionalEmployeeParam reads :employeeId when the route has one.
func optionalEmployeeParam(c *fiber.Ctx) (*uuid.UUID, bool) {
	raw := c.Params("employeeId")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// GetShiftStatus returns the global status or one employee's effective status
// GET /api/attendance/shift-status
// GET /api/attendance/shift-status/:employeeId
func (h *AttendanceHandler) GetShiftStatus(c *fiber.Ctx) error {
	employeeID, ok := optionalEmployeeParam(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	status, err := h.attendanceService.GetShiftStatus(employeeID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status)
}

// StartShift reopens check-in
// POST /api/attendance/start-shift
// POST /api/attendance/start-shift/:employeeId
func (h *AttendanceHandler) StartShift(c *fiber.Ctx) error {
	employeeID, ok := optionalEmployeeParam(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	status, err := h.attendanceService.StartShift(employeeID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status)
}

// TimeToGo ends the shift; check-ins are refused until the next start
// POST /api/attendance/time-to-go
// POST /api/attendance/time-to-go/:employeeId
func (h *AttendanceHandler) TimeToGo(c *fiber.Ctx) error {
	employeeID, ok := optionalEmployeeParam(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	status, err := h.attendanceService.TimeToGo(employeeID, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(status)
}

// ClearOverride removes an employee's shift-status override
// DELETE /api/attendance/shift-status/:employeeId
func (h *AttendanceHandler) ClearOverride(c *fiber.Ctx) error {
	employeeID, ok := paramID(c, "employeeId")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.attendanceService.ClearOverride(employeeID, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Shift status override cleared"})
}

// attendanceTarget picks whose attendance a check-in/out is for.
// Admins may act for another employee; everyone else acts for themselves.
func attendanceTarget(req *service.CheckInRequest, actor service.Actor) (uuid.UUID, error) {
	target, err := service.ParseOptionalID(req.EmployeeID)
	if err != nil {
		return uuid.Nil, err
	}
	if target == nil || *target == actor.ID {
		return actor.ID, nil
	}
	if !actor.IsAdmin() {
		return uuid.Nil, service.ErrForbidden
	}
	return *target, nil
}

// checkInBody parses the optional request body.
func checkInBody(c *fiber.Ctx) (*service.CheckInRequest, bool) {
	var req service.CheckInRequest
	if len(c.Body()) == 0 {
		return &req, true
	}
	if err := c.BodyParser(&req); err != nil {
		return nil, false
	}
	return &req, true
}

// CheckIn records the employee's arrival
// POST /api/attendance/checkin
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	req, ok := checkInBody(c)
	if !ok {
		return invalidJSON(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}
	employeeID, err := attendanceTarget(req, actor)
	if err != nil {
		return respondError(c, err)
	}

	record, err := h.attendanceService.CheckIn(employeeID, req.Note)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Checked in successfully",
		"data":    record,
	})
}

// CheckOut closes the open check-in
// POST /api/attendance/checkout
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	req, ok := checkInBody(c)
	if !ok {
		return invalidJSON(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, err)
	}
	employeeID, err := attendanceTarget(req, actor)
	if err != nil {
		return respondError(c, err)
	}

	record, err := h.attendanceService.CheckOut(employeeID, req.Note)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Checked out successfully",
		"data":    record,
	})
}

// GetAttendance lists attendance records
// GET /api/attendance?employee_id=&shift_id=&from=&to=
func (h *AttendanceHandler) GetAttendance(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	employeeID, err := service.ParseOptionalID(c.Query("employee_id"))
	if err != nil {
		return respondError(c, err)
	}
	shiftID, err := service.ParseOptionalID(c.Query("shift_id"))
	if err != nil {
		return respondError(c, err)
	}

	records, err := h.attendanceService.GetAttendance(repository.AttendanceFilter{
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		From:       c.Query("from"),
		To:         c.Query("to"),
	}, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  records,
		"total": len(records),
	})
}

// GetToday lists today's attendance records
// GET /api/attendance/today
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	records, err := h.attendanceService.GetToday(actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  records,
		"total": len(records),
	})
}
