// Command server runs the hostel inventory HTTP API.
package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/sahanmw/hostel-inventory/internal/config"
	"github.com/sahanmw/hostel-inventory/internal/database"
	"github.com/sahanmw/hostel-inventory/internal/handler"
	"github.com/sahanmw/hostel-inventory/internal/logger"
	"github.com/sahanmw/hostel-inventory/internal/mail"
	"github.com/sahanmw/hostel-inventory/internal/middleware"
	"github.com/sahanmw/hostel-inventory/internal/repository"
	"github.com/sahanmw/hostel-inventory/internal/router"
	"github.com/sahanmw/hostel-inventory/internal/session"
)

func main() {
	cfg := config.Load()

	zlog := logger.New(cfg.Env)
	defer func() { _ = zlog.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	// Redis backs sessions and rate limiting. A nil client degrades to
	// in-memory sessions and disables the limiter.
	rdb := config.NewRedisClient()
	if rdb == nil {
		zlog.Warn("redis unavailable; using in-memory sessions, rate limiting disabled")
	}
	sessions := session.New(rdb)

	sender := mail.New(config.LoadMailConfig(), zlog)

	users := repository.NewUserRepo(db)
	rooms := repository.NewRoomRepo(db)
	assets := repository.NewAssetRepo(db)
	reports := repository.NewDamageReportRepo(db)

	userHandler := handler.NewUserHandler(cfg, users, sessions, sender, zlog)
	roomHandler := handler.NewRoomHandler(rooms)
	assetHandler := handler.NewAssetHandler(assets, rooms)
	reportHandler := handler.NewDamageReportHandler(reports, rooms)
	dashHandler := handler.NewDashboardHandler(users, rooms, assets, reports)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterUsers(e, cfg, userHandler, sessions, users, limit)
	router.RegisterInventory(e, roomHandler, assetHandler, reportHandler, dashHandler)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
