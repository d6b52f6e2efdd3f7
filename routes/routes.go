package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthstation/BEAttendance/config"
	"github.com/healthstation/BEAttendance/handlers"
	"github.com/healthstation/BEAttendance/httperr"
	"github.com/healthstation/BEAttendance/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg)
	usr := handlers.NewUserHandler()
	adm := handlers.NewAdminHandler()
	att := handlers.NewAttendanceHandler()
	sum := handlers.NewSummaryHandler()
	stats := handlers.NewStatsHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	// ===== Authenticated =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	e.GET("/auth/me", auth.Me, authMW)
	e.POST("/attendance", att.Create, authMW)
	e.GET("/attendance", att.List, authMW)

	// ===== Admin console =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole("admin"))
	admin.GET("/stats", stats.Overview)

	admin.GET("/users", usr.List)
	admin.POST("/users", usr.Create)
	admin.PUT("/users/:userId", usr.Update)
	admin.PUT("/users/:userId/password", usr.ChangePassword)

	admin.GET("/admins", adm.List)
	admin.POST("/admins", adm.Create)
	admin.PUT("/admins/:adminId/password", adm.ChangePassword)

	admin.GET("/attendance/summary", sum.Summary)
	admin.GET("/attendance/summary.csv", sum.SummaryCSV)
	admin.GET("/attendance/summary.xlsx", sum.SummaryXLSX)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return httperr.JSON(c, http.StatusNotFound, "NOT_FOUND", "Endpoint tidak ditemukan.", nil)
	})
}
