package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Mailcadence/mailcadence/config"
	"github.com/Mailcadence/mailcadence/internal/domain"
	httphandler "github.com/Mailcadence/mailcadence/internal/http"
	"github.com/Mailcadence/mailcadence/internal/repository"
	"github.com/Mailcadence/mailcadence/internal/service"
	"github.com/Mailcadence/mailcadence/internal/service/planner"
	"github.com/Mailcadence/mailcadence/internal/service/scheduler"
	"github.com/Mailcadence/mailcadence/internal/service/sendbackend"
	"github.com/Mailcadence/mailcadence/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithField("error", err.Error()).Fatal("Server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	senderRepo := repository.NewSenderRepository(db, cfg.Security.SecretKey)
	recipientRepo := repository.NewRecipientRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	backend, stopBackend := buildSendBackend(cfg, senderRepo, recipientRepo, log)
	defer stopBackend()

	taskScheduler := scheduler.NewScheduler(backend, scheduler.NewRealTimerSource(), log, &scheduler.Config{
		CompletionCheckInterval: cfg.Scheduler.CompletionCheckInterval,
		ProgressLogInterval:     cfg.Scheduler.ProgressLogInterval,
	})

	taskService := service.NewSendTaskService(taskRepo, senderRepo, recipientRepo,
		planner.NewPlanner(log), taskScheduler, log)

	if err := taskService.RecoverTasks(context.Background()); err != nil {
		return fmt.Errorf("recover tasks: %w", err)
	}

	mux := http.NewServeMux()
	httphandler.NewSendTaskHandler(taskService, log).RegisterRoutes(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("Server started")
		serverError <- server.ListenAndServe()
	}()

	select {
	case err := <-serverError:
		return err
	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("Shutdown signal received - starting graceful shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}

		// Task records keep their last persisted status; RecoverTasks rolls
		// any still marked running to paused on the next boot.
		log.Info("Server stopped")
		return nil
	}
}

// buildSendBackend picks the delivery transport from configuration.
func buildSendBackend(cfg *config.Config, senderRepo domain.SenderRepository, recipientRepo domain.RecipientRepository, log logger.Logger) (domain.SendBackend, func()) {
	if cfg.SendBackend.Mode == "smtp" {
		backend := sendbackend.NewSMTPBackend(&sendbackend.SMTPConfig{
			MaxConcurrentConnections: cfg.SendBackend.MaxConcurrentConnections,
			DialTimeout:              cfg.SendBackend.DialTimeout,
			PerMinuteLimit:           cfg.SendBackend.PerMinuteLimit,
			PerHourLimit:             cfg.SendBackend.PerHourLimit,
		}, senderRepo, recipientRepo, log)
		return backend, backend.Stop
	}

	backend := sendbackend.NewSimulator(&sendbackend.SimulatorConfig{
		MinLatency:     cfg.SendBackend.MinLatency,
		MaxLatency:     cfg.SendBackend.MaxLatency,
		SuccessRate:    cfg.SendBackend.SuccessRate,
		PerMinuteLimit: cfg.SendBackend.PerMinuteLimit,
		PerHourLimit:   cfg.SendBackend.PerHourLimit,
	}, log)
	return backend, backend.Stop
}
