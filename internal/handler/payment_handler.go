package handler

import (
	"go-backoffice-api/internal/model"
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateTransaction submits a payment for review
// POST /api/transactions
func (h *PaymentHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := h.paymentService.CreateTransaction(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction submitted", "data": tx})
}

// UpdateTransaction edits a pending transaction of the caller
// PUT /api/transactions/:id
func (h *PaymentHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	var req service.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := h.paymentService.UpdateTransaction(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction updated", "data": tx})
}

// DeleteTransaction withdraws a pending transaction of the caller
// DELETE /api/transactions/:id
func (h *PaymentHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.paymentService.DeleteTransaction(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

// GET /api/transactions/:id
func (h *PaymentHandler) GetTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := h.paymentService.GetTransaction(id, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": tx})
}

// GET /api/transactions?status=&submitted_by=&from=&to=
func (h *PaymentHandler) GetTransactions(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	dates, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	submittedBy, err := service.ParseOptionalID(c.Query("submitted_by"))
	if err != nil {
		return respondError(c, err)
	}

	txs, err := h.paymentService.GetTransactions(repository.PaymentFilter{
		DateRange:       dates,
		SubmittedByID:   submittedBy,
		Status:          c.Query("status"),
		IncludeInactive: queryBool(c, "include_inactive"),
	}, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": txs, "total": len(txs)})
}

// Approve marks a pending transaction approved
// POST /api/transactions/:id/approve
func (h *PaymentHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, h.paymentService.Approve, "Transaction approved")
}

// Reject marks a pending transaction rejected
// POST /api/transactions/:id/reject
func (h *PaymentHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, h.paymentService.Reject, "Transaction rejected")
}

type reviewFunc func(id uuid.UUID, note string, actor service.Actor) (*model.PaymentTransaction, error)

func (h *PaymentHandler) review(c *fiber.Ctx, fn reviewFunc, message string) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	var req service.ReviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidJSON(c)
		}
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := fn(id, req.Note, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": message, "data": tx})
}
