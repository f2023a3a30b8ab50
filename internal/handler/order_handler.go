package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func orderFilter(c *fiber.Ctx) (repository.OrderFilter, error) {
	dates, err := dateRange(c)
	if err != nil {
		return repository.OrderFilter{}, err
	}
	return repository.OrderFilter{
		DateRange:       dates,
		Status:          c.Query("status"),
		Search:          c.Query("search"),
		IncludeInactive: queryBool(c, "include_inactive"),
	}, nil
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	order, err := h.orderService.CreateOrder(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order created successfully", "data": order})
}

// PUT /api/orders/:id
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	var req service.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	order, err := h.orderService.UpdateOrder(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order updated successfully", "data": order})
}

// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.orderService.DeleteOrder(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": order})
}

// GET /api/orders?from=&to=&status=&search=
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	filter, err := orderFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	orders, err := h.orderService.GetOrders(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": orders, "total": len(orders)})
}

// GET /api/orders/summary
func (h *OrderHandler) GetSummary(c *fiber.Ctx) error {
	filter, err := orderFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.orderService.Summary(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": summary})
}
