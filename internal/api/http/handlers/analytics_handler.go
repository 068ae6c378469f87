package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/equitask/equitask-api/internal/service"
)

// AnalyticsHandler serves team reports.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// WeeklyReport GET /analytics/weekly-report.
func (h *AnalyticsHandler) WeeklyReport(c *fiber.Ctx) error {
	report, err := h.analytics.WeeklyReport(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(weeklyReportResponse(report))
}
