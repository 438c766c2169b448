package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/muralisunil/event-elegance-landing/internal/application"
	"github.com/muralisunil/event-elegance-landing/internal/config"
	httptransport "github.com/muralisunil/event-elegance-landing/internal/http"
	"github.com/muralisunil/event-elegance-landing/internal/logging"
	"github.com/muralisunil/event-elegance-landing/internal/persistence/sqlstore"
)

func main() {
	bootLogger := logging.New(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		bootLogger.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, level)

	storage, err := sqlstore.Open(string(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	eventRepo := newEventRepositoryAdapter(storage)
	venueRepo := newVenueRepositoryAdapter(storage)
	sessionRepo := newSessionRepositoryAdapter(storage)

	eventService := application.NewEventServiceWithLogger(eventRepo, idGenerator, now, cfg.Location, logger)
	venueService := application.NewVenueServiceWithLogger(venueRepo, eventService, idGenerator, now, logger)
	sessionService := application.NewSessionService(sessionRepo, eventService, venueService, idGenerator, now, application.SessionOptions{
		StrictRoomBooking: cfg.StrictRoomBooking,
		WarningCacheTTL:   cfg.WarningCacheTTL,
		Logger:            logger,
	})
	venueService.OnRoomsChange(sessionService.InvalidateWarnings)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Events:     httptransport.NewEventHandler(eventService, logger),
		Sessions:   httptransport.NewSessionHandler(sessionService, logger),
		Venues:     httptransport.NewVenueHandler(venueService, logger),
		Calendar:   httptransport.NewCalendarHandler(eventService, sessionService, venueService, cfg.Location, now, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("event planner API listening",
		"addr", server.Addr,
		"driver", cfg.DBDriver,
		"timezone", cfg.Timezone,
		"strict_room_booking", cfg.StrictRoomBooking,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
