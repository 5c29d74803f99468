package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Abd-ElghanyMohammed/myflash/internal/config"
	"github.com/Abd-ElghanyMohammed/myflash/internal/infra"
	"github.com/Abd-ElghanyMohammed/myflash/internal/router"
	"github.com/Abd-ElghanyMohammed/myflash/internal/service"
	"github.com/Abd-ElghanyMohammed/myflash/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Start goroutine worker pool for async WhatsApp delivery. Workers
	// are wired here (composition root) so the pool has full access to
	// all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	waClient := infra.NewWhatsAppClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneID)
	notifyCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	notifyWorker := worker.NewNotifyWorker(waClient, notifyCB, cfg)
	worker.StartWorkerPool(ctx, rdb, notifyWorker, cfg.WorkerPoolSize)

	hub := service.NewSnapshotHub()

	r, migrationSvc := router.New(cfg, router.Deps{
		DB:       db,
		Redis:    rdb,
		Hub:      hub,
		NotifyCB: notifyCB,
	})

	// Retire range-encoded legacy records before accepting traffic.
	if err := migrationSvc.SweepAll(ctx); err != nil {
		log.Error().Err(err).Msg("startup migration sweep failed")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		// No write timeout: /v1/units/stream holds its response open.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("myflash backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
