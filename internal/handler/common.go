package handler

import (
	"errors"
	"strings"
	"unicode"

	"go-backoffice-api/internal/middleware"
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"
	"go-backoffice-api/pkg/export"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var notFoundErrors = []error{
	service.ErrEmployeeNotFound,
	service.ErrShiftNotFound,
	service.ErrVendorNotFound,
	service.ErrExpenseNotFound,
	service.ErrPayrollNotFound,
	service.ErrOrderNotFound,
	service.ErrClientNotFound,
	service.ErrResellerLabelNotFound,
	service.ErrResellerTxNotFound,
	service.ErrUSPSLabelNotFound,
	service.ErrGoalNotFound,
	service.ErrTransactionNotFound,
	service.ErrNoOverride,
}

var forbiddenErrors = []error{
	service.ErrForbidden,
	service.ErrNotOwnTransaction,
}

var badRequestErrors = []error{
	service.ErrValidation,
	service.ErrInvalidID,
	service.ErrInvalidDate,
	service.ErrInvalidPeriod,
	service.ErrDateRange,
	service.ErrNegative,
	service.ErrInvalidOrderStatus,
	service.ErrOrderNumberTaken,
	service.ErrVendorInactive,
	service.ErrClientInactive,
	service.ErrPayrollAlreadyPaid,
	service.ErrPayrollExists,
	service.ErrTransactionReviewed,
	service.ErrEmployeeInactive,
	service.ErrEmailTaken,
	service.ErrUnknownSession,
	service.ErrLastAdmin,
	service.ErrWrongPassword,
	service.ErrSameTimeStartEnd,
	service.ErrInvalidWeekday,
	service.ErrShiftNameTaken,
	service.ErrShiftEnded,
	service.ErrAlreadyCheckedIn,
	service.ErrNotCheckedIn,
	export.ErrUnsupportedFormat,
}

// respondError maps a service error to its HTTP status and the {"error": ...} body.
func respondError(c *fiber.Ctx, err error) error {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return c.Status(404).JSON(fiber.Map{"error": capitalize(target.Error())})
		}
	}
	for _, target := range forbiddenErrors {
		if errors.Is(err, target) {
			return c.Status(403).JSON(fiber.Map{"error": capitalize(target.Error())})
		}
	}
	if errors.Is(err, service.ErrStatusConflict) {
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// actorFrom reads the employee RequireAuth stored in context.
func actorFrom(c *fiber.Ctx) (service.Actor, bool) {
	employee, ok := c.Locals(middleware.LocalEmployee).(*model.Employee)
	if !ok || employee == nil {
		return service.Actor{}, false
	}
	return service.ActorOf(employee), true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}

// paramID parses a uuid route parameter.
func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func queryBool(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(c.Query(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// sendFile writes an export as a download.
func sendFile(c *fiber.Ctx, f *export.File) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Name+`"`)
	return c.Send(f.Body)
}

// dateRange reads the from/to query values (YYYY-MM-DD).
func dateRange(c *fiber.Ctx) (repository.DateRange, error) {
	return service.ParseDateRange(c.Query("from"), c.Query("to"))
}
