package handler

import (
	"go-backoffice-api/internal/service"
	"go-backoffice-api/internal/ws"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultActivityDays = 7
	maxActivityDays     = 90
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	hub              *ws.Hub
}

func NewDashboardHandler(dashboardService service.DashboardService, hub *ws.Hub) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, hub: hub}
}

// GetDailyActivity returns per-day check-ins, USPS labels and orders, oldest first
// GET /api/dashboard/activity?days=7
func (h *DashboardHandler) GetDailyActivity(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultActivityDays)
	switch {
	case days <= 0:
		days = defaultActivityDays
	case days > maxActivityDays:
		days = maxActivityDays
	}

	activity, err := h.dashboardService.GetDailyActivity(days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   activity,
	})
}

// GetDashboardStats returns the month-to-date overview plus live presence
// GET /api/dashboard/stats
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetDashboardStats()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":             stats,
		"online_employees": h.hub.ConnectedUsers(),
	})
}
