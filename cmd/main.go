package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/healthstation/BEAttendance/config"
	"github.com/healthstation/BEAttendance/database"
	"github.com/healthstation/BEAttendance/logger"
	"github.com/healthstation/BEAttendance/routes"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// fail early kalau DB belum siap
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	logger.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
