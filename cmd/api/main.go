package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/config"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/repository"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/service"
	"github.com/cyberbirth/cyberbirth-backend/internal/bootstrap"
	"github.com/cyberbirth/cyberbirth-backend/internal/logging"
	"go.uber.org/zap"
)

const serviceName = "cyberbirth-api"

func main() {
	cfg, err := config.Load(config.BackendRedis)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode logs a run failure and flushes the logger before the process exits.
func exitCode(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("server exited", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	slot, closeSlot, err := bootstrap.OpenSlot(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSlot()

	store, err := repository.Open(ctx, slot, logger)
	if err != nil {
		return err
	}

	wishClient := bootstrap.NewWishClient(ctx, &cfg.Gemini, logger)
	svc := service.NewBirthdayService(store, wishClient)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
		Store:          store,
		Service:        svc,
		Wishes:         wishClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
