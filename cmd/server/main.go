package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/config"
	"github.com/EliasMeh/ExamenBDD/internal/infra"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
	"github.com/EliasMeh/ExamenBDD/internal/router"
	"github.com/EliasMeh/ExamenBDD/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in development, JSON otherwise
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	if cfg.SeedData {
		if err := infra.Seed(db); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("REDIS_URL not set: stats cache and order confirmations disabled")
	}

	closer := infra.NewCloser(5 * time.Second)
	closer.Add("postgres", func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	if rdb != nil {
		closer.Add("redis", func(context.Context) error { return rdb.Close() })
	}

	// Confirmation pipeline: committed orders are queued in Redis and turned
	// into a PDF bon de commande mailed to the client.
	var dispatcher *worker.Dispatcher
	if cfg.NotificationsEnabled() {
		dispatcher = worker.NewDispatcher(rdb)

		cbCfg := infra.DefaultCBConfig()
		confirmations := worker.NewConfirmationWorker(
			repository.NewCommandeRepository(db),
			repository.NewClientRepository(db),
			infra.NewMailer(cfg),
			infra.NewCircuitBreaker(cbCfg),
			cfg.PDFStoragePath,
		)
		pool := worker.NewPool(rdb, worker.QueueCommandes, cfg.WorkerPoolSize)
		retry := worker.DefaultRetryPolicy()
		retry.Paused = cbCfg.OpenTimeout
		pool.SetRetryPolicy(retry)
		pool.Handle(worker.JobCommandeConfirmee, confirmations.Process)
		pool.Start(context.Background())
		closer.Add("worker pool", pool.Stop)
	} else {
		log.Info().Msg("order confirmations disabled (REDIS_URL or SMTP_HOST missing)")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(cfg, db, rdb, dispatcher),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	closer.Add("http server", srv.Shutdown)

	go func() {
		log.Info().Msgf("ExamenBDD API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown on SIGINT / SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := closer.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("unclean shutdown")
	}
	log.Info().Msg("server exited")
}
