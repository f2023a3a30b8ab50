package handler

import (
	"go-backoffice-api/internal/repository"
	"go-backoffice-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type VendorHandler struct {
	vendorService service.VendorService
}

func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// POST /api/vendors
func (h *VendorHandler) CreateVendor(c *fiber.Ctx) error {
	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	vendor, err := h.vendorService.CreateVendor(&req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Vendor created successfully", "data": vendor})
}

// PUT /api/vendors/:id
func (h *VendorHandler) UpdateVendor(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}
	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	vendor, err := h.vendorService.UpdateVendor(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vendor updated successfully", "data": vendor})
}

// DELETE /api/vendors/:id
func (h *VendorHandler) DeleteVendor(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}
	actor, ok := actorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.vendorService.DeleteVendor(id, actor); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vendor deleted successfully"})
}

// GET /api/vendors/:id
func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	vendor, err := h.vendorService.GetVendor(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": vendor})
}

// GET /api/vendors?category=&search=&include_inactive=
func (h *VendorHandler) GetVendors(c *fiber.Ctx) error {
	vendors, err := h.vendorService.GetVendors(repository.VendorFilter{
		Category:        c.Query("category"),
		Search:          c.Query("search"),
		IncludeInactive: queryBool(c, "include_inactive"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"data": vendors, "total": len(vendors)})
}
