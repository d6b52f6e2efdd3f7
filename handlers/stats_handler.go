package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/httperr"
	"github.com/healthstation/BEAttendance/models"
)

type StatsHandler struct{}

func NewStatsHandler() *StatsHandler { return &StatsHandler{} }

// GET /admin/stats
func (h *StatsHandler) Overview(c echo.Context) error {
	var totalUsers, totalAdmins, attendanceToday int64

	if err := database.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return httperr.Internal(c, err, "")
	}
	if err := database.DB.Model(&models.Admin{}).Count(&totalAdmins).Error; err != nil {
		return httperr.Internal(c, err, "")
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	if err := database.DB.Model(&models.Attendance{}).
		Where("time >= ? AND time < ?", start, start.Add(24*time.Hour)).
		Count(&attendanceToday).Error; err != nil {
		return httperr.Internal(c, err, "")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalUsers":      totalUsers,
		"totalAdmins":     totalAdmins,
		"attendanceToday": attendanceToday,
	})
}
