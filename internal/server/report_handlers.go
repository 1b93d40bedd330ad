package server

import (
	"fmt"
	"time"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DownloadUserActivityReport handles GET /api/admin/reports/user-activity
func (s *Server) DownloadUserActivityReport(c *fiber.Ctx) error {
	data, err := s.reportService.UserActivityCSV(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return sendCSV(c, "user_activity", data)
}

// DownloadFeedbackLogsReport handles GET /api/admin/reports/feedback-logs
func (s *Server) DownloadFeedbackLogsReport(c *fiber.Ctx) error {
	data, err := s.reportService.FeedbackLogsCSV(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return sendCSV(c, "feedback_logs", data)
}

// DownloadSwapStatsReport handles GET /api/admin/reports/swap-stats
func (s *Server) DownloadSwapStatsReport(c *fiber.Ctx) error {
	data, err := s.reportService.SwapStatsCSV(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return sendCSV(c, "swap_stats", data)
}

// DownloadUsersReport handles GET /api/admin/reports/users
func (s *Server) DownloadUsersReport(c *fiber.Ctx) error {
	data, err := s.reportService.UsersCSV(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return sendCSV(c, "users", data)
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
