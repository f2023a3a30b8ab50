package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ResellerHandler struct {
	resellerService service.ResellerService
}

func NewResellerHandler(resellerService service.ResellerService) *ResellerHandler {
	return &ResellerHandler{resellerService: resellerService}
}

func resellerFilter(c *fiber.Ctx) (repository.ResellerFilter, error) {
	dates, err := dateRange(c)
	if err != nil {
		return repository.ResellerFilter{}, err
	}
	clientID, err := service.ParseOptionalID(c.Query("client_id"))
	if err != nil {
		return repository.ResellerFilter{}, err
	}
	return repository.ResellerFilter{
		DateRange:       dates,
		ClientID:        clientID,
		Search:          c.Query("search"),
		IncludeInactive: queryBool(c, "include_inactive"),
	}, nil
}

// ============ CLIENTS ============

// POST /api/resellers/clients
func (h *ResellerHandler) CreateClient(c *fiber.Ctx) error {
	var req service.ResellerClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	client, err := h.resellerService.CreateClient(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Client created successfully", "data": client})
}

// PUT /api/resellers/clients/:id
func (h *ResellerHandler) UpdateClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	var req service.ResellerClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	client, err := h.resellerService.UpdateClient(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Client updated successfully", "data": client})
}

// DELETE /api/resellers/clients/:id
func (h *ResellerHandler) DeleteClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.resellerService.DeleteClient(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Client deleted successfully"})
}

// GET /api/resellers/clients/:id
func (h *ResellerHandler) GetClient(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	client, err := h.resellerService.GetClient(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": client})
}

// GET /api/resellers/clients?search=
func (h *ResellerHandler) GetClients(c *fiber.Ctx) error {
	filter, err := resellerFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	clients, err := h.resellerService.GetClients(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": clients, "total": len(clients)})
}

// ============ LABELS ============

// POST /api/resellers/labels
func (h *ResellerHandler) CreateLabel(c *fiber.Ctx) error {
	var req service.ResellerLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	label, err := h.resellerService.CreateLabel(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Label entry created successfully", "data": label})
}

// PUT /api/resellers/labels/:id
func (h *ResellerHandler) UpdateLabel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid label ID"})
	}
	var req service.ResellerLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	label, err := h.resellerService.UpdateLabel(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Label entry updated successfully", "data": label})
}

// DELETE /api/resellers/labels/:id
func (h *ResellerHandler) DeleteLabel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid label ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.resellerService.DeleteLabel(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Label entry deleted successfully"})
}

// GET /api/resellers/labels/:id
func (h *ResellerHandler) GetLabel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid label ID"})
	}

	label, err := h.resellerService.GetLabel(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": label})
}

// GET /api/resellers/labels?client_id=&from=&to=
func (h *ResellerHandler) GetLabels(c *fiber.Ctx) error {
	filter, err := resellerFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	labels, err := h.resellerService.GetLabels(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": labels, "total": len(labels)})
}

// ============ PAYMENTS RECEIVED ============

// POST /api/resellers/transactions
func (h *ResellerHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.ResellerTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := h.resellerService.CreateTransaction(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Payment recorded successfully", "data": tx})
}

// PUT /api/resellers/transactions/:id
func (h *ResellerHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	var req service.ResellerTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tx, err := h.resellerService.UpdateTransaction(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payment updated successfully", "data": tx})
}

// DELETE /api/resellers/transactions/:id
func (h *ResellerHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.resellerService.DeleteTransaction(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Payment deleted successfully"})
}

// GET /api/resellers/transactions/:id
func (h *ResellerHandler) GetTransaction(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	tx, err := h.resellerService.GetTransaction(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": tx})
}

// GET /api/resellers/transactions?client_id=&from=&to=
func (h *ResellerHandler) GetTransactions(c *fiber.Ctx) error {
	filter, err := resellerFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	txs, err := h.resellerService.GetTransactions(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": txs, "total": len(txs)})
}

// Dashboard returns per-client profit and balances
// GET /api/resellers/dashboard?from=&to=
func (h *ResellerHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.resellerService.Dashboard(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": dashboard})
}
