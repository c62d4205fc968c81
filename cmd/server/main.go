package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/minamaher/clinic-booking/internal/config"
	"github.com/minamaher/clinic-booking/internal/database"
	"github.com/minamaher/clinic-booking/internal/handler"
	"github.com/minamaher/clinic-booking/internal/logging"
	"github.com/minamaher/clinic-booking/internal/metrics"
	"github.com/minamaher/clinic-booking/internal/middleware"
	"github.com/minamaher/clinic-booking/internal/queue"
	"github.com/minamaher/clinic-booking/internal/repository"
	"github.com/minamaher/clinic-booking/internal/router"
	"github.com/minamaher/clinic-booking/internal/schedule"
	"github.com/minamaher/clinic-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("zone", cfg.Timezone).Msg("load clinic timezone")
	}
	rules := schedule.Rules{
		Location:           loc,
		OpenMinute:         cfg.OpenMinute,
		CloseMinute:        cfg.CloseMinute,
		StepMinutes:        cfg.StepMinutes,
		ProximityMinutes:   cfg.ProximityMinutes,
		DefaultCapacity:    cfg.DefaultCapacity,
		ReducedCapacity:    cfg.ReducedCapacity,
		ReducedTailMinutes: cfg.ReducedTailMinutes,
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer db.Close()

	// Redis backs the response cache and rate limiter; both degrade to
	// no-ops when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn().Msg("redis unavailable; cache and rate limit disabled")
	}

	patients := repository.NewPatientRepo(db)
	tokens := repository.NewTokenRepo(db)
	doctors := repository.NewDoctorRepo(db)
	vaccines := repository.NewVaccineRepo(db)
	vaccineLedger := repository.NewVaccineBookingRepo(db)
	doctorLedger := repository.NewDoctorBookingRepo(db)

	vaccineSvc := service.NewVaccineBookingService(vaccineLedger, rules, logger)
	doctorSvc := service.NewDoctorBookingService(doctorLedger, patients, rules, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLog(logger))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, patients, tokens), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewCatalogHandler(doctors, vaccines), cacheMW)
	router.RegisterBookings(e,
		handler.NewVaccineBookingHandler(vaccineSvc),
		handler.NewDoctorBookingHandler(doctorSvc),
		cfg.JWTSecret)

	// Consumer writes booking.created events to the audit log; it
	// reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logger.Warn().Err(err).Msg("booking consumer stopped")
		}
	}()

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil {
			logger.Info().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
